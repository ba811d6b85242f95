// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package products

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package products -destination ./mock_products.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package products -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package products -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package products -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func setupTest(t *testing.T) (*MockStorageInterface, *Service) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).
		AnyTimes()

	return mockStorage, NewService(mockStorage, mockTracer, mockMonitor, mockLogger)
}

func TestService_Create(t *testing.T) {
	category := &types.Category{ID: "cat-1", OrganizationID: "org-1", Name: "Drinks"}

	t.Run("default stock is one", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetCategoryByID(gomock.Any(), "cat-1", "org-1").Return(category, nil)
		mockStorage.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *types.Product) (*types.Product, error) {
				if p.Stock != 1 {
					t.Errorf("expected default stock 1, got %d", p.Stock)
				}
				p.ID = "prod-1"
				return p, nil
			})

		product, err := s.Create(context.Background(), &types.Product{
			OrganizationID: "org-1", CategoryID: "cat-1", AuthorID: "user-123", Code: "SKU-1", Name: "Coffee",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product.ID != "prod-1" {
			t.Errorf("expected product prod-1, got %q", product.ID)
		}
	})

	t.Run("explicit stock preserved", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetCategoryByID(gomock.Any(), "cat-1", "org-1").Return(category, nil)
		mockStorage.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *types.Product) (*types.Product, error) {
				if p.Stock != 40 {
					t.Errorf("expected stock 40, got %d", p.Stock)
				}
				return p, nil
			})

		_, err := s.Create(context.Background(), &types.Product{
			OrganizationID: "org-1", CategoryID: "cat-1", Code: "SKU-1", Name: "Coffee", Stock: 40,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetCategoryByID(gomock.Any(), "cat-1", "org-1").Return(nil, storage.ErrNotFound)

		_, err := s.Create(context.Background(), &types.Product{
			OrganizationID: "org-1", CategoryID: "cat-1", Code: "SKU-1", Name: "Coffee",
		})
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			t.Fatalf("expected a not found error, got %v", err)
		}
	})

	t.Run("foreign key violation", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetCategoryByID(gomock.Any(), "cat-1", "org-1").Return(category, nil)
		mockStorage.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil, storage.ErrForeignKeyViolation)

		_, err := s.Create(context.Background(), &types.Product{
			OrganizationID: "org-1", CategoryID: "cat-1", Code: "SKU-1", Name: "Coffee",
		})
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			t.Fatalf("expected a not found error, got %v", err)
		}
	})
}

func TestService_Update(t *testing.T) {
	category := &types.Category{ID: "cat-1", OrganizationID: "org-1", Name: "Drinks"}

	t.Run("success", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetCategoryByID(gomock.Any(), "cat-1", "org-1").Return(category, nil)
		mockStorage.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).Return(nil)

		err := s.Update(context.Background(), &types.Product{
			ID: "prod-1", OrganizationID: "org-1", CategoryID: "cat-1", Code: "SKU-1", Name: "Coffee", Stock: 5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetCategoryByID(gomock.Any(), "cat-1", "org-1").Return(category, nil)
		mockStorage.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).Return(storage.ErrNotFound)

		err := s.Update(context.Background(), &types.Product{
			ID: "prod-1", OrganizationID: "org-1", CategoryID: "cat-1", Code: "SKU-1", Name: "Coffee",
		})
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			t.Fatalf("expected a not found error, got %v", err)
		}
	})
}

func TestService_StockReport(t *testing.T) {
	t.Run("aggregated rows returned", func(t *testing.T) {
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetProductStock(gomock.Any(), "org-1").
			Return([]*types.ProductStock{
				{Code: "SKU-1", Name: "Coffee", Stock: 43},
				{Code: "SKU-2", Name: "Tea", Stock: 7},
			}, nil)

		report, err := s.StockReport(context.Background(), "org-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report) != 2 || report[0].Stock != 43 {
			t.Errorf("unexpected report: %+v", report)
		}
	})

	t.Run("storage error propagates", func(t *testing.T) {
		dbErr := errors.New("db error")
		mockStorage, s := setupTest(t)
		mockStorage.EXPECT().GetProductStock(gomock.Any(), "org-1").Return(nil, dbErr)

		if _, err := s.StockReport(context.Background(), "org-1"); !errors.Is(err, dbErr) {
			t.Fatalf("expected error %v, got %v", dbErr, err)
		}
	})
}
