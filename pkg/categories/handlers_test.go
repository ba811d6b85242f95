// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package categories

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
	"github.com/canonical/inventory-service/pkg/authorization"
)

func newTestMux(t *testing.T, mockService *MockServiceInterface, mockLogger *MockLoggerInterface) *chi.Mux {
	t.Helper()
	mux := chi.NewMux()
	NewAPI(mockService, mockLogger).RegisterEndpoints(mux)
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
			body: `{"name": "Drinks", "description": "Hot and cold"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ interface{}, c *types.Category) (*types.Category, error) {
						if c.OrganizationID != "org-1" {
							t.Errorf("expected organization org-1, got %q", c.OrganizationID)
						}
						c.ID = "cat-1"
						return c, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"description": "no name"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate name",
			body: `{"name": "Drinks"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, apperrors.NewConflictError("category name already in use"))
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

			req := withAuthContext(httptest.NewRequest(http.MethodPost, "/api/v0/organizations/acme/categories", strings.NewReader(tc.body)), types.RoleMember)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockService.EXPECT().GetDetails(gomock.Any(), "cat-1", "org-1").Return(
		&types.Category{ID: "cat-1", OrganizationID: "org-1", Name: "Drinks"},
		[]*types.Product{{ID: "prod-1", Code: "SKU-1", Name: "Coffee", Stock: 3}},
		nil,
	)

	mux := newTestMux(t, mockService, mockLogger)

	req := withAuthContext(httptest.NewRequest(http.MethodGet, "/api/v0/organizations/acme/categories/cat-1", nil), types.RoleMember)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Category categoryView  `json:"category"`
		Products []productView `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body.Category.Name != "Drinks" {
		t.Errorf("expected category Drinks, got %q", body.Category.Name)
	}
	if len(body.Products) != 1 || body.Products[0].Code != "SKU-1" {
		t.Errorf("unexpected products: %+v", body.Products)
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
				mockService.EXPECT().Delete(gomock.Any(), "cat-1", "org-1").Return(nil)
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
			name: "unknown category",
			role: types.RoleAdmin,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Delete(gomock.Any(), "cat-1", "org-1").
					Return(apperrors.NewNotFoundError("category not found"))
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

			mux := newTestMux(t, mockService, mockLogger)

			req := withAuthContext(httptest.NewRequest(http.MethodDelete, "/api/v0/organizations/acme/categories/cat-1", nil), tc.role)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
