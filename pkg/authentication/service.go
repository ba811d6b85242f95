// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/tracing"
	"github.com/canonical/inventory-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	issuer  TokenIssuerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	issuer TokenIssuerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		issuer:  issuer,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Authenticate validates an email/password pair and mints a session token.
// An unknown email and a wrong password produce the same error so the
// endpoint cannot be used to probe which emails are registered. The email
// lookup is a case-sensitive exact match.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Authenticate")
	defer span.End()

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthnFailure(email)
			return "", apperrors.NewAuthenticationError("invalid credentials")
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Security().AuthnFailure(email)
		return "", apperrors.NewAuthenticationError("invalid credentials")
	}

	token, err := s.issuer.IssueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Security().AuthnSuccess(user.ID)
	return token, nil
}

// Register creates a user. When an organization accepts the email's domain,
// the storage layer adds a MEMBER membership atomically with the user row.
// The plaintext password never leaves this method.
func (s *Service) Register(ctx context.Context, email, name, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Register")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, membership, err := s.storage.RegisterUser(ctx, &types.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return "", apperrors.NewConflictError("email already in use")
		}
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	if membership != nil {
		s.logger.Infof("user %s auto-joined organization %s", user.ID, membership.OrganizationID)
	}

	return user.ID, nil
}
