// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/tracing"
	"github.com/canonical/inventory-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) GetDetails(ctx context.Context, userID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.GetDetails")
	defer span.End()

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

func (s *Service) ListOrganizations(ctx context.Context, userID string) ([]*types.UserOrganization, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.ListOrganizations")
	defer span.End()

	orgs, err := s.storage.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user organizations: %w", err)
	}
	return orgs, nil
}

// Onboard marks the user as onboarded. Users with no memberships cannot
// complete onboarding, they have nothing to be onboarded into yet.
func (s *Service) Onboard(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "users.Service.Onboard")
	defer span.End()

	memberships, err := s.storage.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return apperrors.NewValidationError("user must belong to at least one organization")
	}

	if err := s.storage.SetUserOnboarded(ctx, userID, true); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("user not found")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
