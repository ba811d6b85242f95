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

func (s *Storage) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCategory")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category ID: %w", err)
	}

	var newCategory types.Category
	err = s.db.Statement(ctx).
		Insert("categories").
		Columns("id", "organization_id", "name", "description", "image_url").
		Values(id.String(), c.OrganizationID, c.Name, c.Description, c.ImageURL).
		Suffix("RETURNING id, organization_id, name, description, image_url, created_at").
		QueryRowContext(ctx).
		Scan(&newCategory.ID, &newCategory.OrganizationID, &newCategory.Name, &newCategory.Description, &newCategory.ImageURL, &newCategory.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &newCategory, nil
}

// GetCategoryByID scopes the lookup to the organization so one tenant can
// never address another tenant's category.
func (s *Storage) GetCategoryByID(ctx context.Context, id, orgID string) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCategoryByID")
	defer span.End()

	var c types.Category
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "name", "description", "image_url", "created_at").
		From("categories").
		Where(sq.Eq{"id": id, "organization_id": orgID}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

func (s *Storage) ListCategoriesByOrganizationID(ctx context.Context, orgID string) ([]*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCategoriesByOrganizationID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "organization_id", "name", "description", "image_url", "created_at").
		From("categories").
		Where(sq.Eq{"organization_id": orgID}).
		OrderBy("name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return categories, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, c *types.Category) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCategory")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("image_url", c.ImageURL).
		Where(sq.Eq{"id": c.ID, "organization_id": c.OrganizationID}).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update category: %w", err)
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

func (s *Storage) DeleteCategory(ctx context.Context, id, orgID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteCategory")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("categories").
		Where(sq.Eq{"id": id, "organization_id": orgID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
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
