// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package slug

import (
	"testing"
)

func TestGenerate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "Acme", expected: "acme"},
		{name: "spaces", input: "Acme Incorporated", expected: "acme-incorporated"},
		{name: "diacritics", input: "Super Econômico", expected: "super-economico"},
		{name: "punctuation collapses", input: "Acme, Inc.", expected: "acme-inc"},
		{name: "leading and trailing noise", input: "  --Acme--  ", expected: "acme"},
		{name: "digits kept", input: "Warehouse 42", expected: "warehouse-42"},
		{name: "already a slug", input: "super-economico", expected: "super-economico"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.input); got != tc.expected {
				t.Errorf("Generate(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	names := []string{"Acme Incorporated", "Padaria São João", "X"}
	for _, n := range names {
		if Generate(n) != Generate(n) {
			t.Errorf("Generate(%q) is not deterministic", n)
		}
	}
}

func TestGenerateCollision(t *testing.T) {
	// Differing display names that normalize to the same slug; creation of the
	// second organization must be refused by the unique constraint upstream.
	if Generate("Super Econômico") != Generate("super economico") {
		t.Error("expected normalized collision")
	}
}
