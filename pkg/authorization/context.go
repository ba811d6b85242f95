// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/types"
)

// AuthContext is the resolved authorization state for one request: who is
// calling, which organization the URL addresses, and the caller's role in
// it. It is an immutable value passed through the request context, never
// mutated in place.
type AuthContext struct {
	UserID       string
	Organization *types.Organization
	Role         types.Role
}

// RequireRole returns an Authorization error unless the caller's role is one
// of the allowed roles. The error message does not reveal which roles would
// have been accepted.
func (a *AuthContext) RequireRole(allowed ...types.Role) error {
	if a.Role.In(allowed...) {
		return nil
	}
	return apperrors.NewAuthorizationError("you don't have the permission to perform this action")
}

type contextKey struct{}

var authContextKey = contextKey{}

// WithAuthContext returns a new context carrying the resolved AuthContext.
func WithAuthContext(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// FromContext retrieves the AuthContext placed by the middleware.
func FromContext(ctx context.Context) (*AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey).(*AuthContext)
	return ac, ok
}
