// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_authorization.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestAuthorizer_Resolve(t *testing.T) {
	org := &types.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}
	dbErr := errors.New("db error")

	testCases := []struct {
		name         string
		setupMocks   func(*MockStorageInterface, *MockSecurityLoggerInterface)
		expectedRole types.Role
		expectedKind apperrors.Kind
		expectedErr  error
	}{
		{
			name: "member resolves",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme").Return(org, nil)
				mockStorage.EXPECT().GetMembership(gomock.Any(), "user-123", "org-1").
					Return(&types.Membership{ID: "member-1", UserID: "user-123", OrganizationID: "org-1", Role: types.RoleMember}, nil)
			},
			expectedRole: types.RoleMember,
		},
		{
			name: "admin resolves",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme").Return(org, nil)
				mockStorage.EXPECT().GetMembership(gomock.Any(), "user-123", "org-1").
					Return(&types.Membership{ID: "member-1", UserID: "user-123", OrganizationID: "org-1", Role: types.RoleAdmin}, nil)
			},
			expectedRole: types.RoleAdmin,
		},
		{
			name: "unknown slug is not found",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme").Return(nil, storage.ErrNotFound)
			},
			expectedKind: apperrors.KindNotFound,
		},
		{
			name: "non-member is forbidden",
			setupMocks: func(mockStorage *MockStorageInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme").Return(org, nil)
				mockStorage.EXPECT().GetMembership(gomock.Any(), "user-123", "org-1").Return(nil, storage.ErrNotFound)
				mockSecurity.EXPECT().AuthzFailure("user-123", "acme")
			},
			expectedKind: apperrors.KindAuthorization,
		},
		{
			name: "storage error propagates",
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme").Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.Resolve").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			tc.setupMocks(mockStorage, mockSecurity)

			a := NewAuthorizer(mockStorage, mockTracer, mockMonitor, mockLogger)

			authCtx, err := a.Resolve(context.Background(), "user-123", "acme")

			if tc.expectedKind != apperrors.KindUnknown {
				if !apperrors.IsKind(err, tc.expectedKind) {
					t.Fatalf("expected error kind %v, got %v", tc.expectedKind, err)
				}
				if authCtx != nil {
					t.Error("expected no auth context on failure")
				}
				return
			}
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if authCtx.UserID != "user-123" {
				t.Errorf("expected user ID user-123, got %q", authCtx.UserID)
			}
			if authCtx.Organization.ID != "org-1" {
				t.Errorf("expected organization org-1, got %q", authCtx.Organization.ID)
			}
			if authCtx.Role != tc.expectedRole {
				t.Errorf("expected role %v, got %v", tc.expectedRole, authCtx.Role)
			}
		})
	}
}

func TestAuthContext_RequireRole(t *testing.T) {
	testCases := []struct {
		name        string
		role        types.Role
		allowed     []types.Role
		expectError bool
	}{
		{name: "admin passes admin gate", role: types.RoleAdmin, allowed: []types.Role{types.RoleAdmin}},
		{name: "member fails admin gate", role: types.RoleMember, allowed: []types.Role{types.RoleAdmin}, expectError: true},
		{name: "billing passes stock gate", role: types.RoleBilling, allowed: []types.Role{types.RoleAdmin, types.RoleBilling}},
		{name: "member fails stock gate", role: types.RoleMember, allowed: []types.Role{types.RoleAdmin, types.RoleBilling}, expectError: true},
		{name: "admin passes stock gate", role: types.RoleAdmin, allowed: []types.Role{types.RoleAdmin, types.RoleBilling}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ac := &AuthContext{UserID: "user-123", Role: tc.role}
			err := ac.RequireRole(tc.allowed...)
			if tc.expectError {
				if !apperrors.IsKind(err, apperrors.KindAuthorization) {
					t.Fatalf("expected an authorization error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
