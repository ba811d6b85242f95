// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package categories

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

func (s *Service) Create(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "categories.Service.Create")
	defer span.End()

	created, err := s.storage.CreateCategory(ctx, c)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, apperrors.NewConflictError("category name already in use")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, orgID string) ([]*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "categories.Service.List")
	defer span.End()

	categories, err := s.storage.ListCategoriesByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *Service) GetDetails(ctx context.Context, id, orgID string) (*types.Category, []*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "categories.Service.GetDetails")
	defer span.End()

	category, err := s.storage.GetCategoryByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, nil, fmt.Errorf("failed to get category: %w", err)
	}

	products, err := s.storage.ListProductsByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list category products: %w", err)
	}

	return category, products, nil
}

func (s *Service) Update(ctx context.Context, c *types.Category) error {
	ctx, span := s.tracer.Start(ctx, "categories.Service.Update")
	defer span.End()

	if err := s.storage.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("category not found")
		}
		if errors.Is(err, storage.ErrDuplicateKey) {
			return apperrors.NewConflictError("category name already in use")
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id, orgID string) error {
	ctx, span := s.tracer.Start(ctx, "categories.Service.Delete")
	defer span.End()

	if err := s.storage.DeleteCategory(ctx, id, orgID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFoundError("category not found")
		}
		return fmt.Errorf("failed to delete category: %w", err)
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
