// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type StorageInterface interface {
	// Users
	RegisterUser(ctx context.Context, u *types.User) (*types.User, *types.Membership, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	SetUserOnboarded(ctx context.Context, id string, onboarded bool) error

	// Organizations
	CreateOrganizationWithOwner(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	FindAutoJoinOrganization(ctx context.Context, domain string) (*types.Organization, error)
	ListOrganizations(ctx context.Context, query string, page uint64) ([]*types.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
	ListMembersByOrganizationID(ctx context.Context, orgID string) ([]*types.OrganizationMember, error)

	// Memberships
	AddMember(ctx context.Context, orgID, userID string, role types.Role) (string, error)
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.UserOrganization, error)

	// Categories
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	GetCategoryByID(ctx context.Context, id, orgID string) (*types.Category, error)
	ListCategoriesByOrganizationID(ctx context.Context, orgID string) ([]*types.Category, error)
	UpdateCategory(ctx context.Context, c *types.Category) error
	DeleteCategory(ctx context.Context, id, orgID string) error

	// Products
	CreateProduct(ctx context.Context, p *types.Product) (*types.Product, error)
	GetProductByID(ctx context.Context, id, orgID string) (*types.Product, error)
	UpdateProduct(ctx context.Context, p *types.Product) error
	ListProductsByOrganizationID(ctx context.Context, orgID string) ([]*types.Product, error)
	ListProductsByCategoryID(ctx context.Context, categoryID string) ([]*types.Product, error)
	GetProductStock(ctx context.Context, orgID string) ([]*types.ProductStock, error)
}
