// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type ServiceInterface interface {
	// Create derives the slug from the name, inserts the organization and
	// makes the creator an ADMIN member in the same transaction.
	Create(ctx context.Context, o *types.Organization) (*types.Organization, error)
	List(ctx context.Context, query string, page uint64) ([]*types.Organization, error)
	ListMembers(ctx context.Context, orgID string) ([]*types.OrganizationMember, error)
	Delete(ctx context.Context, orgID string) error
}

// StorageInterface is the subset of the storage layer the organization
// service needs.
type StorageInterface interface {
	CreateOrganizationWithOwner(ctx context.Context, o *types.Organization) (*types.Organization, error)
	ListOrganizations(ctx context.Context, query string, page uint64) ([]*types.Organization, error)
	ListMembersByOrganizationID(ctx context.Context, orgID string) ([]*types.OrganizationMember, error)
	DeleteOrganization(ctx context.Context, id string) error
}
