// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string.
	// Returns the subject (user ID) if the token is valid, otherwise an error.
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

type TokenIssuerInterface interface {
	// IssueToken mints a signed token with the user ID as subject.
	IssueToken(userID string) (string, error)
}

type ServiceInterface interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, name, password string) (string, error)
}

// StorageInterface is the subset of the storage layer the session service
// needs.
type StorageInterface interface {
	RegisterUser(ctx context.Context, u *types.User) (*types.User, *types.Membership, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}
