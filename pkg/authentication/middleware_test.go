// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
)

func TestMiddleware_Authenticate(t *testing.T) {
	testCases := []struct {
		name           string
		authHeader     string
		setupMocks     func(*MockTokenVerifierInterface, *MockLoggerInterface)
		expectedStatus int
		expectedUserID string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			setupMocks:     func(*MockTokenVerifierInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-bearer scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(*MockTokenVerifierInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects token",
			authHeader: "Bearer bad-token",
			setupMocks: func(mockVerifier *MockTokenVerifierInterface, mockLogger *MockLoggerInterface) {
				mockVerifier.EXPECT().VerifyToken(gomock.Any(), "bad-token").
					Return("", apperrors.NewAuthenticationError("invalid auth token"))
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			setupMocks: func(mockVerifier *MockTokenVerifierInterface, mockLogger *MockLoggerInterface) {
				mockVerifier.EXPECT().VerifyToken(gomock.Any(), "good-token").Return("user-123", nil)
			},
			expectedStatus: http.StatusOK,
			expectedUserID: "user-123",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockVerifier := NewMockTokenVerifierInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Middleware.Authenticate").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockVerifier, mockLogger)

			middleware := NewMiddleware(mockVerifier, mockTracer, mockMonitor, mockLogger)

			var gotUserID string
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v0/users/details", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			middleware.Authenticate()(next).ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}

			if tc.expectedStatus != http.StatusOK {
				if nextCalled {
					t.Error("expected handler not to be called")
				}
				var body map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("expected a JSON error body: %v", err)
				}
				if body["status"] != float64(http.StatusUnauthorized) {
					t.Errorf("expected status field %d, got %v", http.StatusUnauthorized, body["status"])
				}
				return
			}

			if !nextCalled {
				t.Fatal("expected handler to be called")
			}
			if gotUserID != tc.expectedUserID {
				t.Errorf("expected user ID %q in context, got %q", tc.expectedUserID, gotUserID)
			}
		})
	}
}
