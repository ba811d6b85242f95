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

// RegisterUser creates the user row and, when an organization accepts the
// email's domain, the MEMBER membership in the same transaction. Either both
// rows are written or neither is.
func (s *Storage) RegisterUser(ctx context.Context, u *types.User) (*types.User, *types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RegisterUser")
	defer span.End()

	var newUser *types.User
	var membership *types.Membership

	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		created, err := s.createUser(txCtx, u)
		if err != nil {
			return err
		}
		newUser = created

		org, err := s.FindAutoJoinOrganization(txCtx, emailDomain(u.Email))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}

		id, err := s.AddMember(txCtx, org.ID, created.ID, types.RoleMember)
		if err != nil {
			return err
		}
		membership = &types.Membership{
			ID:             id,
			UserID:         created.ID,
			OrganizationID: org.ID,
			Role:           types.RoleMember,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return newUser, membership, nil
}

func (s *Storage) createUser(ctx context.Context, u *types.User) (*types.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var newUser types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "email", "name", "password_hash").
		Values(id.String(), u.Email, u.Name, u.PasswordHash).
		Suffix("RETURNING id, email, name, password_hash, onboarded, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&newUser.ID, &newUser.Email, &newUser.Name, &newUser.PasswordHash, &newUser.Onboarded, &newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &newUser, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id})
}

// GetUserByEmail matches the email exactly, case-sensitively.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"email": email})
}

func (s *Storage) getUser(ctx context.Context, pred sq.Eq) (*types.User, error) {
	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "email", "name", "password_hash", "onboarded", "created_at", "updated_at").
		From("users").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Onboarded, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (s *Storage) SetUserOnboarded(ctx context.Context, id string, onboarded bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetUserOnboarded")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("onboarded", onboarded).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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

func emailDomain(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return email[i+1:]
		}
	}
	return ""
}
