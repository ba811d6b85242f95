// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/tracing"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Resolve checks the slug before the membership so an unknown organization is
// a 404 for everyone, member or not.
func (a *Authorizer) Resolve(ctx context.Context, userID, slug string) (*AuthContext, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Resolve")
	defer span.End()

	org, err := a.storage.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("organization not found")
		}
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}

	membership, err := a.storage.GetMembership(ctx, userID, org.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.logger.Security().AuthzFailure(userID, org.Slug)
			return nil, apperrors.NewAuthorizationError("user is not a member of organization")
		}
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	return &AuthContext{
		UserID:       userID,
		Organization: org,
		Role:         membership.Role,
	}, nil
}

func NewAuthorizer(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	return &Authorizer{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
