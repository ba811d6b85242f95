// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/types"
	"github.com/canonical/inventory-service/pkg/authentication"
)

func newTestRequest(method, target string, authenticated bool) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if authenticated {
		req = req.WithContext(authentication.WithUserID(req.Context(), "user-123"))
	}
	return req
}

func TestHandleDetails(t *testing.T) {
	testCases := []struct {
		name           string
		authenticated  bool
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:          "success",
			authenticated: true,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().GetDetails(gomock.Any(), "user-123").
					Return(&types.User{ID: "user-123", Email: "alice@acme.com", Name: "Alice", PasswordHash: "$2a$10$secret"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthenticated",
			authenticated:  false,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "unknown user",
			authenticated: true,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().GetDetails(gomock.Any(), "user-123").
					Return(nil, apperrors.NewNotFoundError("user not found"))
			},
			expectedStatus: http.StatusNotFound,
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

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, newTestRequest(http.MethodGet, "/api/v0/users/details", tc.authenticated))

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var body map[string]map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}
			user := body["user"]
			if user["email"] != "alice@acme.com" {
				t.Errorf("expected email alice@acme.com, got %v", user["email"])
			}
			if _, leaked := user["password_hash"]; leaked {
				t.Error("password hash must not appear in the response")
			}
		})
	}
}

func TestHandleOrganizations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockService.EXPECT().ListOrganizations(gomock.Any(), "user-123").
		Return([]*types.UserOrganization{
			{OrganizationID: "org-1", Name: "Acme", Slug: "acme", Role: types.RoleAdmin},
			{OrganizationID: "org-2", Name: "Globex", Slug: "globex", Role: types.RoleMember},
		}, nil)

	mux := chi.NewMux()
	NewAPI(mockService, mockLogger).RegisterEndpoints(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, newTestRequest(http.MethodGet, "/api/v0/users/organizations", true))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Organizations []userOrganization `json:"organizations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if len(body.Organizations) != 2 {
		t.Fatalf("expected 2 organizations, got %d", len(body.Organizations))
	}
	if body.Organizations[0].Role != "ADMIN" || body.Organizations[1].Role != "MEMBER" {
		t.Errorf("unexpected roles: %+v", body.Organizations)
	}
}

func TestHandleOnboard(t *testing.T) {
	testCases := []struct {
		name           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Onboard(gomock.Any(), "user-123").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "no memberships",
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Onboard(gomock.Any(), "user-123").
					Return(apperrors.NewValidationError("user must belong to at least one organization"))
			},
			expectedStatus: http.StatusBadRequest,
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

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, newTestRequest(http.MethodPatch, "/api/v0/users/onboard", true))

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
