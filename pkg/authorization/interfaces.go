// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/inventory-service/internal/types"
)

type AuthorizerInterface interface {
	// Resolve loads the organization identified by slug and the caller's
	// membership in it. Returns a NotFound error for an unknown slug and an
	// Authorization error when the caller is not a member.
	Resolve(ctx context.Context, userID, slug string) (*AuthContext, error)
}

// StorageInterface is the subset of the storage layer membership checks need.
type StorageInterface interface {
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error)
}
