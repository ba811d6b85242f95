// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

// Private key type so no other package can collide with or forge the value.
type contextKey struct{}

var userContextKey = contextKey{}

// WithUserID returns a new context carrying the verified user ID. Only the
// authentication middleware writes it; everything downstream reads it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// GetUserID retrieves the verified user ID from the context.
// Returns an empty string and false if no identity was established.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userContextKey).(string)
	return id, ok
}
