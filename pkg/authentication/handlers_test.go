// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
)

func TestHandleRegister(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		setupMocks      func(*MockServiceInterface)
		expectedStatus  int
		expectedUserID  string
		expectedMessage string
	}{
		{
			name: "success",
			body: `{"email": "alice@acme.com", "name": "Alice", "password": "s3cret1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Register(gomock.Any(), "alice@acme.com", "Alice", "s3cret1").
					Return("user-123", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedUserID: "user-123",
		},
		{
			name:            "malformed json",
			body:            `{"email": `,
			setupMocks:      func(*MockServiceInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
		{
			name:            "invalid email",
			body:            `{"email": "not-an-email", "name": "Alice", "password": "s3cret1"}`,
			setupMocks:      func(*MockServiceInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "validation error",
		},
		{
			name:            "missing name",
			body:            `{"email": "alice@acme.com", "password": "s3cret1"}`,
			setupMocks:      func(*MockServiceInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "validation error",
		},
		{
			name:            "short password",
			body:            `{"email": "alice@acme.com", "name": "Alice", "password": "abc"}`,
			setupMocks:      func(*MockServiceInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "validation error",
		},
		{
			name: "duplicate email",
			body: `{"email": "alice@acme.com", "name": "Alice", "password": "s3cret1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Register(gomock.Any(), "alice@acme.com", "Alice", "s3cret1").
					Return("", apperrors.NewConflictError("email already in use"))
			},
			expectedStatus:  http.StatusConflict,
			expectedMessage: "email already in use",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService, mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/users", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}

			if tc.expectedUserID != "" && body["user_id"] != tc.expectedUserID {
				t.Errorf("expected user_id %q, got %v", tc.expectedUserID, body["user_id"])
			}
			if tc.expectedMessage != "" && body["message"] != tc.expectedMessage {
				t.Errorf("expected message %q, got %v", tc.expectedMessage, body["message"])
			}
		})
	}
}

func TestHandleCreateSession(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		setupMocks      func(*MockServiceInterface)
		expectedStatus  int
		expectedToken   string
		expectedMessage string
	}{
		{
			name: "success",
			body: `{"email": "alice@acme.com", "password": "s3cret1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Authenticate(gomock.Any(), "alice@acme.com", "s3cret1").
					Return("signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedToken:  "signed-token",
		},
		{
			name: "invalid credentials",
			body: `{"email": "alice@acme.com", "password": "wrong-1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Authenticate(gomock.Any(), "alice@acme.com", "wrong-1").
					Return("", apperrors.NewAuthenticationError("invalid credentials"))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid credentials",
		},
		{
			name:            "missing password",
			body:            `{"email": "alice@acme.com"}`,
			setupMocks:      func(*MockServiceInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "validation error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService, mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/sessions/password", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}

			if tc.expectedToken != "" && body["token"] != tc.expectedToken {
				t.Errorf("expected token %q, got %v", tc.expectedToken, body["token"])
			}
			if tc.expectedMessage != "" && body["message"] != tc.expectedMessage {
				t.Errorf("expected message %q, got %v", tc.expectedMessage, body["message"])
			}
		})
	}
}
