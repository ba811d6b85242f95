// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/slug"
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

func (s *Service) Create(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Create")
	defer span.End()

	o.Slug = slug.Generate(o.Name)

	created, err := s.storage.CreateOrganizationWithOwner(ctx, o)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// The constraint name tells slug and domain conflicts apart.
			if strings.Contains(err.Error(), "domain") {
				return nil, apperrors.NewConflictError("another organization already uses this domain")
			}
			return nil, apperrors.NewConflictError("organization name already in use")
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.logger.Infof("organization %s created by user %s", created.ID, created.OwnerID)
	return created, nil
}

func (s *Service) List(ctx context.Context, query string, page uint64) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.List")
	defer span.End()

	orgs, err := s.storage.ListOrganizations(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

func (s *Service) ListMembers(ctx context.Context, orgID string) ([]*types.OrganizationMember, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.ListMembers")
	defer span.End()

	members, err := s.storage.ListMembersByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *Service) Delete(ctx context.Context, orgID string) error {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Delete")
	defer span.End()

	if err := s.storage.DeleteOrganization(ctx, orgID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("organization not found")
		}
		return fmt.Errorf("failed to delete organization: %w", err)
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
