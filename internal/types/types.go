// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Onboarded    bool      `db:"onboarded"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Organization struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Slug             string    `db:"slug"`
	Description      string    `db:"description"`
	ImageURL         string    `db:"image_url"`
	Domain           string    `db:"domain"`
	AutoJoinByDomain bool      `db:"auto_join_by_domain"`
	OwnerID          string    `db:"owner_id"`
	CreatedAt        time.Time `db:"created_at"`
}

type Membership struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	OrganizationID string    `db:"organization_id"`
	Role           Role      `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
}

type Category struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	ImageURL       string    `db:"image_url"`
	CreatedAt      time.Time `db:"created_at"`
}

type Product struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	CategoryID     string    `db:"category_id"`
	AuthorID       string    `db:"author_id"`
	Code           string    `db:"code"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Stock          int64     `db:"stock"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// OrganizationMember is the member row joined with its user details.
type OrganizationMember struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// UserOrganization is a membership joined with its organization details.
type UserOrganization struct {
	OrganizationID string
	Name           string
	Slug           string
	Domain         string
	ImageURL       string
	Role           Role
}

// ProductStock is the aggregated stock for all products sharing a code.
type ProductStock struct {
	Code  string
	Name  string
	Stock int64
}
