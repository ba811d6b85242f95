// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

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

//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_users.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func setupTest(t *testing.T) (*MockStorageInterface, *Service) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).
		AnyTimes()

	return mockStorage, NewService(mockStorage, mockTracer, mockMonitor, mockLogger)
}

func TestService_GetDetails(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetUserByID(gomock.Any(), "user-123").
			Return(&types.User{ID: "user-123", Email: "alice@acme.com", Name: "Alice"}, nil)

		user, err := s.GetDetails(context.Background(), "user-123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "alice@acme.com" {
			t.Errorf("expected email alice@acme.com, got %q", user.Email)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetUserByID(gomock.Any(), "user-123").Return(nil, storage.ErrNotFound)

		_, err := s.GetDetails(context.Background(), "user-123")
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			t.Fatalf("expected a not found error, got %v", err)
		}
	})
}

func TestService_ListOrganizations(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().ListOrganizationsByUserID(gomock.Any(), "user-123").
			Return([]*types.UserOrganization{
				{OrganizationID: "org-1", Name: "Acme", Slug: "acme", Role: types.RoleAdmin},
			}, nil)

		orgs, err := s.ListOrganizations(context.Background(), "user-123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(orgs) != 1 || orgs[0].Slug != "acme" {
			t.Errorf("unexpected organizations: %+v", orgs)
		}
	})

	t.Run("storage error propagates", func(t *testing.T) {
		dbErr := errors.New("db error")
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().ListOrganizationsByUserID(gomock.Any(), "user-123").Return(nil, dbErr)

		_, err := s.ListOrganizations(context.Background(), "user-123")
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected error %v, got %v", dbErr, err)
		}
	})
}

func TestService_Onboard(t *testing.T) {
	t.Run("success with membership", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().ListMembershipsByUserID(gomock.Any(), "user-123").
			Return([]*types.Membership{{ID: "member-1", Role: types.RoleMember}}, nil)
		mockStorage.EXPECT().SetUserOnboarded(gomock.Any(), "user-123", true).Return(nil)

		if err := s.Onboard(context.Background(), "user-123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no memberships is a validation error", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().ListMembershipsByUserID(gomock.Any(), "user-123").
			Return([]*types.Membership{}, nil)

		err := s.Onboard(context.Background(), "user-123")
		if !apperrors.IsKind(err, apperrors.KindValidation) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().ListMembershipsByUserID(gomock.Any(), "user-123").
			Return([]*types.Membership{{ID: "member-1", Role: types.RoleMember}}, nil)
		mockStorage.EXPECT().SetUserOnboarded(gomock.Any(), "user-123", true).Return(storage.ErrNotFound)

		err := s.Onboard(context.Background(), "user-123")
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			t.Fatalf("expected a not found error, got %v", err)
		}
	})
}
