// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package products

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type ServiceInterface interface {
	Create(ctx context.Context, p *types.Product) (*types.Product, error)
	Update(ctx context.Context, p *types.Product) error
	ListByOrganization(ctx context.Context, orgID string) ([]*types.Product, error)
	// StockReport aggregates stock per product code across the organization.
	StockReport(ctx context.Context, orgID string) ([]*types.ProductStock, error)
}

// StorageInterface is the subset of the storage layer the product service
// needs.
type StorageInterface interface {
	CreateProduct(ctx context.Context, p *types.Product) (*types.Product, error)
	GetProductByID(ctx context.Context, id, orgID string) (*types.Product, error)
	UpdateProduct(ctx context.Context, p *types.Product) error
	ListProductsByOrganizationID(ctx context.Context, orgID string) ([]*types.Product, error)
	GetProductStock(ctx context.Context, orgID string) ([]*types.ProductStock, error)
	GetCategoryByID(ctx context.Context, id, orgID string) (*types.Category, error)
}
