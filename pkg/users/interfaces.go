// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type ServiceInterface interface {
	GetDetails(ctx context.Context, userID string) (*types.User, error)
	ListOrganizations(ctx context.Context, userID string) ([]*types.UserOrganization, error)
	Onboard(ctx context.Context, userID string) error
}

// StorageInterface is the subset of the storage layer the user service needs.
type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	SetUserOnboarded(ctx context.Context, id string, onboarded bool) error
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.UserOrganization, error)
}
