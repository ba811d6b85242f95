// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/tracing"
)

var _ TokenVerifierInterface = (*JWTVerifier)(nil)

// JWTVerifier validates bearer tokens signed with the process-wide secret.
// Verification is stateless: signature and expiry are the only checks, the
// subject's continued existence is not re-validated per request.
type JWTVerifier struct {
	secret []byte

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// VerifyToken returns the subject of a validly signed, unexpired token.
// A bad signature, malformed structure and elapsed expiry are
// indistinguishable to the caller.
func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	_, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.logger.Debugf("token verification failed: %v", err)
		return "", apperrors.Wrap(apperrors.NewAuthenticationError("invalid auth token"), err)
	}

	if claims.Subject == "" {
		return "", apperrors.NewAuthenticationError("invalid auth token")
	}

	return claims.Subject, nil
}

func NewJWTVerifier(secret string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *JWTVerifier {
	return &JWTVerifier{
		secret:  []byte(secret),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
