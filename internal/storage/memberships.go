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

func (s *Storage) AddMember(ctx context.Context, orgID, userID string, role types.Role) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "organization_id", "user_id", "role").
		Values(id.String(), orgID, userID, role.String()).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}

	return id.String(), nil
}

// GetMembership returns the membership row for the (user, organization)
// pair. The unique constraint on the pair guarantees at most one row.
func (s *Storage) GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	var m types.Membership
	var role string
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "created_at").
		From("memberships").
		Where(sq.Eq{"user_id": userID, "organization_id": orgID}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.OrganizationID, &m.UserID, &role, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	m.Role, err = types.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("corrupt membership row: %w", err)
	}

	return &m, nil
}

func (s *Storage) ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembershipsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "created_at").
		From("memberships").
		Where(sq.Eq{"user_id": userID}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*types.Membership
	for rows.Next() {
		var m types.Membership
		var role string
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.UserID, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Role, err = types.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("corrupt membership row: %w", err)
		}
		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

func (s *Storage) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.UserOrganization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("o.id", "o.name", "o.slug", "COALESCE(o.domain, '')", "o.image_url", "m.role").
		From("memberships m").
		Join("organizations o ON o.id = m.organization_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("o.name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*types.UserOrganization
	for rows.Next() {
		var o types.UserOrganization
		var role string
		if err := rows.Scan(&o.OrganizationID, &o.Name, &o.Slug, &o.Domain, &o.ImageURL, &role); err != nil {
			return nil, fmt.Errorf("failed to scan user organization: %w", err)
		}
		o.Role, err = types.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("corrupt membership row: %w", err)
		}
		orgs = append(orgs, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, nil
}
