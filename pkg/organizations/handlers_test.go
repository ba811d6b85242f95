// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/types"
	"github.com/canonical/inventory-service/pkg/authentication"
	"github.com/canonical/inventory-service/pkg/authorization"
)

func newTestMux(t *testing.T, mockService *MockServiceInterface, mockLogger *MockLoggerInterface) *chi.Mux {
	t.Helper()
	mux := chi.NewMux()
	api := NewAPI(mockService, mockLogger)
	api.RegisterEndpoints(mux)
	api.RegisterScopedEndpoints(mux)
	return mux
}

func withAuthContext(req *http.Request, role types.Role) *http.Request {
	ctx := authorization.WithAuthContext(req.Context(), &authorization.AuthContext{
		UserID:       "user-123",
		Organization: &types.Organization{ID: "org-1", Name: "Acme", Slug: "acme"},
		Role:         role,
	})
	return req.WithContext(ctx)
}

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"name": "Acme", "domain": "acme.com", "auto_join_by_domain": true}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ interface{}, o *types.Organization) (*types.Organization, error) {
						if o.OwnerID != "user-123" {
							t.Errorf("expected owner user-123, got %q", o.OwnerID)
						}
						o.ID = "org-1"
						o.Slug = "acme"
						return o, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"domain": "acme.com"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed domain",
			body:           `{"name": "Acme", "domain": "not a domain"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate domain",
			body: `{"name": "Acme", "domain": "acme.com"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, apperrors.NewConflictError("another organization already uses this domain"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tc.setupMocks(mockService)

			mux := newTestMux(t, mockService, mockLogger)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/organizations", strings.NewReader(tc.body))
			req = req.WithContext(authentication.WithUserID(req.Context(), "user-123"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleList(t *testing.T) {
	t.Run("query and page forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := NewMockServiceInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)
		mockService.EXPECT().List(gomock.Any(), "eco", uint64(3)).
			Return([]*types.Organization{{ID: "org-1", Name: "Super Econômico", Slug: "super-economico"}}, nil)

		mux := newTestMux(t, mockService, mockLogger)

		req := httptest.NewRequest(http.MethodGet, "/api/v0/organizations?query=eco&page=3", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Organizations []organizationView `json:"organizations"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if len(body.Organizations) != 1 || body.Organizations[0].Slug != "super-economico" {
			t.Errorf("unexpected organizations: %+v", body.Organizations)
		}
	})

	t.Run("invalid page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := NewMockServiceInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		mux := newTestMux(t, mockService, mockLogger)

		req := httptest.NewRequest(http.MethodGet, "/api/v0/organizations?page=minus-one", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandleListMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockService.EXPECT().ListMembers(gomock.Any(), "org-1").
		Return([]*types.OrganizationMember{
			{UserID: "user-123", Name: "Alice", Email: "alice@acme.com", Role: types.RoleAdmin},
		}, nil)

	mux := newTestMux(t, mockService, mockLogger)

	req := withAuthContext(httptest.NewRequest(http.MethodGet, "/api/v0/organizations/acme/members", nil), types.RoleMember)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Members []memberView `json:"members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if len(body.Members) != 1 || body.Members[0].Role != "ADMIN" {
		t.Errorf("unexpected members: %+v", body.Members)
	}
}

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name           string
		role           types.Role
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "admin can delete",
			role: types.RoleAdmin,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Delete(gomock.Any(), "org-1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "member cannot delete",
			role:           types.RoleMember,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "billing cannot delete",
			role:           types.RoleBilling,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tc.setupMocks(mockService)

			mux := newTestMux(t, mockService, mockLogger)

			req := withAuthContext(httptest.NewRequest(http.MethodDelete, "/api/v0/organizations/acme", nil), tc.role)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
