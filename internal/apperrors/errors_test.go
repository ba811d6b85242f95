// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "validation", err: NewValidationError("bad input"), expected: KindValidation},
		{name: "authentication", err: NewAuthenticationError("invalid credentials"), expected: KindAuthentication},
		{name: "authorization", err: NewAuthorizationError("not a member"), expected: KindAuthorization},
		{name: "not found", err: NewNotFoundError("organization not found"), expected: KindNotFound},
		{name: "conflict", err: NewConflictError("email already in use"), expected: KindConflict},
		{name: "plain error", err: errors.New("boom"), expected: KindUnknown},
		{name: "nil", err: nil, expected: KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.expected {
				t.Errorf("expected kind %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := NewAuthorizationError("insufficient role")
	wrapped := fmt.Errorf("resolving membership: %w", base)

	if !IsKind(wrapped, KindAuthorization) {
		t.Error("expected wrapped error to keep its kind")
	}

	withCause := Wrap(base, errors.New("db timeout"))
	if !IsKind(withCause, KindAuthorization) {
		t.Error("expected error with cause to keep its kind")
	}
	if withCause.Message() != "insufficient role" {
		t.Errorf("expected message to stay user-facing, got %q", withCause.Message())
	}
	if !errors.Is(withCause, withCause.Unwrap()) && withCause.Unwrap() == nil {
		t.Error("expected cause to be reachable via Unwrap")
	}
}
