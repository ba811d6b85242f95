// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package categories

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type ServiceInterface interface {
	Create(ctx context.Context, c *types.Category) (*types.Category, error)
	List(ctx context.Context, orgID string) ([]*types.Category, error)
	// GetDetails returns the category together with its products.
	GetDetails(ctx context.Context, id, orgID string) (*types.Category, []*types.Product, error)
	Update(ctx context.Context, c *types.Category) error
	Delete(ctx context.Context, id, orgID string) error
}

// StorageInterface is the subset of the storage layer the category service
// needs.
type StorageInterface interface {
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	GetCategoryByID(ctx context.Context, id, orgID string) (*types.Category, error)
	ListCategoriesByOrganizationID(ctx context.Context, orgID string) ([]*types.Category, error)
	UpdateCategory(ctx context.Context, c *types.Category) error
	DeleteCategory(ctx context.Context, id, orgID string) error
	ListProductsByCategoryID(ctx context.Context, categoryID string) ([]*types.Product, error)
}
