// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var _ TokenIssuerInterface = (*TokenIssuer)(nil)

// TokenIssuer mints session tokens. Tokens carry the user ID as subject and
// an absolute expiry; there is no server-side session store and no
// revocation, a token dies only by outliving its lifetime.
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration

	now func() time.Time
}

func (i *TokenIssuer) IssueToken(userID string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

func NewTokenIssuer(secret string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}
