// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
)

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "validation",
			err:             apperrors.NewValidationError("validation error"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "validation error",
		},
		{
			name:            "authentication",
			err:             apperrors.NewAuthenticationError("invalid credentials"),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid credentials",
		},
		{
			name:            "authorization",
			err:             apperrors.NewAuthorizationError("you don't have the permission to perform this action"),
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "you don't have the permission to perform this action",
		},
		{
			name:            "not found",
			err:             apperrors.NewNotFoundError("organization not found"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "organization not found",
		},
		{
			name:            "conflict",
			err:             apperrors.NewConflictError("email already in use"),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "email already in use",
		},
		{
			name:            "wrapped keeps kind",
			err:             fmt.Errorf("handler: %w", apperrors.NewNotFoundError("category not found")),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "category not found",
		},
		{
			name:            "unexpected error leaks nothing",
			err:             errors.New("pq: connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tc.err, logging.NewNoopLogger())

			if rr.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rr.Code)
			}

			var body struct {
				Message string `json:"message"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Message != tc.expectedMessage {
				t.Errorf("expected message %q, got %q", tc.expectedMessage, body.Message)
			}
		})
	}
}
