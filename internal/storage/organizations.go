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

	"github.com/canonical/inventory-service/internal/db"
	"github.com/canonical/inventory-service/internal/types"
)

const organizationPageSize uint64 = 10

// CreateOrganizationWithOwner inserts the organization and its creator's
// ADMIN membership in one transaction.
func (s *Storage) CreateOrganizationWithOwner(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganizationWithOwner")
	defer span.End()

	var newOrg *types.Organization
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		created, err := s.createOrganization(txCtx, o)
		if err != nil {
			return err
		}
		newOrg = created

		if _, err := s.AddMember(txCtx, created.ID, created.OwnerID, types.RoleAdmin); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return newOrg, nil
}

func (s *Storage) createOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organization ID: %w", err)
	}

	var newOrg types.Organization
	err = s.db.Statement(ctx).
		Insert("organizations").
		Columns("id", "name", "slug", "description", "image_url", "domain", "auto_join_by_domain", "owner_id").
		Values(id.String(), o.Name, o.Slug, o.Description, o.ImageURL, nullable(o.Domain), o.AutoJoinByDomain, o.OwnerID).
		Suffix("RETURNING id, name, slug, description, image_url, COALESCE(domain, ''), auto_join_by_domain, owner_id, created_at").
		QueryRowContext(ctx).
		Scan(&newOrg.ID, &newOrg.Name, &newOrg.Slug, &newOrg.Description, &newOrg.ImageURL, &newOrg.Domain, &newOrg.AutoJoinByDomain, &newOrg.OwnerID, &newOrg.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", ConstraintName(err), ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to insert organization: %w", err)
	}

	return &newOrg, nil
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByID")
	defer span.End()

	return s.getOrganization(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationBySlug")
	defer span.End()

	return s.getOrganization(ctx, sq.Eq{"slug": slug})
}

// FindAutoJoinOrganization finds the organization accepting registrations
// for the given email domain. The domain column is unique, so at most one
// row can match.
func (s *Storage) FindAutoJoinOrganization(ctx context.Context, domain string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.FindAutoJoinOrganization")
	defer span.End()

	if domain == "" {
		return nil, ErrNotFound
	}

	return s.getOrganization(ctx, sq.Eq{"domain": domain, "auto_join_by_domain": true})
}

func (s *Storage) getOrganization(ctx context.Context, pred sq.Eq) (*types.Organization, error) {
	var o types.Organization
	err := s.db.Statement(ctx).
		Select("id", "name", "slug", "description", "image_url", "COALESCE(domain, '')", "auto_join_by_domain", "owner_id", "created_at").
		From("organizations").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&o.ID, &o.Name, &o.Slug, &o.Description, &o.ImageURL, &o.Domain, &o.AutoJoinByDomain, &o.OwnerID, &o.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &o, nil
}

func (s *Storage) ListOrganizations(ctx context.Context, query string, page uint64) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizations")
	defer span.End()

	stmt := s.db.Statement(ctx).
		Select("id", "name", "slug", "description", "image_url", "COALESCE(domain, '')", "auto_join_by_domain", "owner_id", "created_at").
		From("organizations").
		OrderBy("name ASC").
		Limit(organizationPageSize).
		Offset(db.Offset(int64(page)+1, organizationPageSize))

	if query != "" {
		stmt = stmt.Where(sq.ILike{"name": fmt.Sprintf("%%%s%%", query)})
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*types.Organization
	for rows.Next() {
		var o types.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.Description, &o.ImageURL, &o.Domain, &o.AutoJoinByDomain, &o.OwnerID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, nil
}

func (s *Storage) DeleteOrganization(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteOrganization")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("organizations").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
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

func (s *Storage) ListMembersByOrganizationID(ctx context.Context, orgID string) ([]*types.OrganizationMember, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByOrganizationID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("u.id", "u.name", "u.email", "m.role").
		From("memberships m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.organization_id": orgID}).
		OrderBy("u.name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.OrganizationMember
	for rows.Next() {
		var m types.OrganizationMember
		var role string
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role, err = types.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("corrupt membership row: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// nullable maps "" to SQL NULL so unique(domain) ignores organizations
// without a domain.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
