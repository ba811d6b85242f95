// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"
)

// Role is the closed set of membership roles. Only the three enumerated
// values are valid on the wire and in storage; use ParseRole at every
// boundary that accepts a raw string.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleMember  Role = "MEMBER"
	RoleBilling Role = "BILLING"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleBilling:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// In reports whether r is one of the allowed roles.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}
