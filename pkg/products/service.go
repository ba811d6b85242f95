// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package products

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

// Create verifies the category belongs to the same organization before
// inserting. A product registered without an explicit stock starts at 1.
func (s *Service) Create(ctx context.Context, p *types.Product) (*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "products.Service.Create")
	defer span.End()

	if _, err := s.storage.GetCategoryByID(ctx, p.CategoryID, p.OrganizationID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	if p.Stock == 0 {
		p.Stock = 1
	}

	created, err := s.storage.CreateProduct(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, apperrors.NewNotFoundError("referenced resource not found")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, p *types.Product) error {
	ctx, span := s.tracer.Start(ctx, "products.Service.Update")
	defer span.End()

	if p.CategoryID != "" {
		if _, err := s.storage.GetCategoryByID(ctx, p.CategoryID, p.OrganizationID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NewNotFoundError("category not found")
			}
			return fmt.Errorf("failed to check category: %w", err)
		}
	}

	if err := s.storage.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("product not found")
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *Service) ListByOrganization(ctx context.Context, orgID string) ([]*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "products.Service.ListByOrganization")
	defer span.End()

	products, err := s.storage.ListProductsByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *Service) StockReport(ctx context.Context, orgID string) ([]*types.ProductStock, error) {
	ctx, span := s.tracer.Start(ctx, "products.Service.StockReport")
	defer span.End()

	report, err := s.storage.GetProductStock(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock report: %w", err)
	}
	return report, nil
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
