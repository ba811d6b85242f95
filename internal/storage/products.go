// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/inventory-service/internal/types"
)

func (s *Storage) CreateProduct(ctx context.Context, p *types.Product) (*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateProduct")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	var newProduct types.Product
	err = s.db.Statement(ctx).
		Insert("products").
		Columns("id", "organization_id", "category_id", "author_id", "code", "name", "description", "stock").
		Values(id.String(), p.OrganizationID, p.CategoryID, p.AuthorID, p.Code, p.Name, p.Description, p.Stock).
		Suffix("RETURNING id, organization_id, category_id, author_id, code, name, description, stock, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&newProduct.ID, &newProduct.OrganizationID, &newProduct.CategoryID, &newProduct.AuthorID, &newProduct.Code, &newProduct.Name, &newProduct.Description, &newProduct.Stock, &newProduct.CreatedAt, &newProduct.UpdatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &newProduct, nil
}

func (s *Storage) GetProductByID(ctx context.Context, id, orgID string) (*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProductByID")
	defer span.End()

	var p types.Product
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "category_id", "author_id", "code", "name", "description", "stock", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id, "organization_id": orgID}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.OrganizationID, &p.CategoryID, &p.AuthorID, &p.Code, &p.Name, &p.Description, &p.Stock, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

func (s *Storage) UpdateProduct(ctx context.Context, p *types.Product) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateProduct")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("stock", p.Stock).
		Set("category_id", p.CategoryID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID, "organization_id": p.OrganizationID}).
		ExecContext(ctx)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) ListProductsByOrganizationID(ctx context.Context, orgID string) ([]*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListProductsByOrganizationID")
	defer span.End()

	return s.listProducts(ctx, sq.Eq{"organization_id": orgID})
}

func (s *Storage) ListProductsByCategoryID(ctx context.Context, categoryID string) ([]*types.Product, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListProductsByCategoryID")
	defer span.End()

	return s.listProducts(ctx, sq.Eq{"category_id": categoryID})
}

func (s *Storage) listProducts(ctx context.Context, pred sq.Eq) ([]*types.Product, error) {
	rows, err := s.db.Statement(ctx).
		Select("id", "organization_id", "category_id", "author_id", "code", "name", "description", "stock", "created_at", "updated_at").
		From("products").
		Where(pred).
		OrderBy("code ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*types.Product
	for rows.Next() {
		var p types.Product
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.CategoryID, &p.AuthorID, &p.Code, &p.Name, &p.Description, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return products, nil
}

// GetProductStock aggregates stock across products sharing a code, for the
// billing report.
func (s *Storage) GetProductStock(ctx context.Context, orgID string) ([]*types.ProductStock, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProductStock")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("code", "MIN(name)", "SUM(stock)").
		From("products").
		Where(sq.Eq{"organization_id": orgID}).
		GroupBy("code").
		OrderBy("code ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate product stock: %w", err)
	}
	defer rows.Close()

	var stock []*types.ProductStock
	for rows.Next() {
		var ps types.ProductStock
		if err := rows.Scan(&ps.Code, &ps.Name, &ps.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product stock: %w", err)
		}
		stock = append(stock, &ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return stock, nil
}
