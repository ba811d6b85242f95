// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/http/response"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/tracing"
	"github.com/canonical/inventory-service/pkg/authentication"
)

type Middleware struct {
	authorizer AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RequireOrganization resolves the {slug} URL parameter into an AuthContext
// and injects it into the request context. It runs after the authentication
// middleware, so a missing user ID means a routing mistake rather than a bad
// token.
func (m *Middleware) RequireOrganization() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authorization.Middleware.RequireOrganization")
			defer span.End()

			userID, ok := authentication.GetUserID(ctx)
			if !ok {
				response.WriteError(w, apperrors.NewAuthenticationError("missing authentication"), m.logger)
				return
			}

			slug := chi.URLParamFromCtx(ctx, "slug")
			if slug == "" {
				response.WriteError(w, apperrors.NewValidationError("missing organization slug"), m.logger)
				return
			}

			authCtx, err := m.authorizer.Resolve(ctx, userID, slug)
			if err != nil {
				response.WriteError(w, err, m.logger)
				return
			}

			ctx = WithAuthContext(ctx, authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewMiddleware(authorizer AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		authorizer: authorizer,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
