// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_organizations.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

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
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return mockStorage, NewService(mockStorage, mockTracer, mockMonitor, mockLogger)
}

func TestService_Create(t *testing.T) {
	testCases := []struct {
		name         string
		orgName      string
		setupMocks   func(*MockStorageInterface)
		expectedSlug string
		expectedKind apperrors.Kind
		expectedMsg  string
	}{
		{
			name:    "slug derived from name",
			orgName: "Super Econômico",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().CreateOrganizationWithOwner(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, o *types.Organization) (*types.Organization, error) {
						if o.Slug != "super-economico" {
							return nil, fmt.Errorf("unexpected slug %q", o.Slug)
						}
						o.ID = "org-1"
						return o, nil
					})
			},
			expectedSlug: "super-economico",
		},
		{
			name:    "name conflict",
			orgName: "Acme",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().CreateOrganizationWithOwner(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("organizations_slug_key: %w", storage.ErrDuplicateKey))
			},
			expectedKind: apperrors.KindConflict,
			expectedMsg:  "organization name already in use",
		},
		{
			name:    "domain conflict",
			orgName: "Acme",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().CreateOrganizationWithOwner(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("organizations_domain_key: %w", storage.ErrDuplicateKey))
			},
			expectedKind: apperrors.KindConflict,
			expectedMsg:  "another organization already uses this domain",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockStorage, s := setupTest(t)
			tc.setupMocks(mockStorage)

			org, err := s.Create(context.Background(), &types.Organization{Name: tc.orgName, OwnerID: "user-123"})

			if tc.expectedKind != apperrors.KindUnknown {
				if !apperrors.IsKind(err, tc.expectedKind) {
					t.Fatalf("expected error kind %v, got %v", tc.expectedKind, err)
				}
				if err.Error() != tc.expectedMsg {
					t.Errorf("expected message %q, got %q", tc.expectedMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if org.Slug != tc.expectedSlug {
				t.Errorf("expected slug %q, got %q", tc.expectedSlug, org.Slug)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	mockStorage, s := setupTest(t)
	mockStorage.EXPECT().ListOrganizations(gomock.Any(), "acme", uint64(2)).
		Return([]*types.Organization{{ID: "org-1", Name: "Acme", Slug: "acme"}}, nil)

	orgs, err := s.List(context.Background(), "acme", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orgs) != 1 || orgs[0].Slug != "acme" {
		t.Errorf("unexpected organizations: %+v", orgs)
	}
}

func TestService_ListMembers(t *testing.T) {
	mockStorage, s := setupTest(t)
	mockStorage.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").
		Return([]*types.OrganizationMember{
			{UserID: "user-123", Name: "Alice", Email: "alice@acme.com", Role: types.RoleAdmin},
		}, nil)

	members, err := s.ListMembers(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 || members[0].Role != types.RoleAdmin {
		t.Errorf("unexpected members: %+v", members)
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().DeleteOrganization(gomock.Any(), "org-1").Return(nil)

		if err := s.Delete(context.Background(), "org-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown organization", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().DeleteOrganization(gomock.Any(), "org-1").Return(storage.ErrNotFound)

		err := s.Delete(context.Background(), "org-1")
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			t.Fatalf("expected a not found error, got %v", err)
		}
	})

	t.Run("storage error propagates", func(t *testing.T) {
		dbErr := errors.New("db error")
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().DeleteOrganization(gomock.Any(), "org-1").Return(dbErr)

		if err := s.Delete(context.Background(), "org-1"); !errors.Is(err, dbErr) {
			t.Fatalf("expected error %v, got %v", dbErr, err)
		}
	})
}
