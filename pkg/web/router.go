// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	cors "github.com/go-chi/cors"

	"github.com/canonical/inventory-service/internal/db"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/monitoring"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/tracing"
	"github.com/canonical/inventory-service/pkg/authentication"
	"github.com/canonical/inventory-service/pkg/authorization"
	"github.com/canonical/inventory-service/pkg/categories"
	"github.com/canonical/inventory-service/pkg/metrics"
	"github.com/canonical/inventory-service/pkg/organizations"
	"github.com/canonical/inventory-service/pkg/products"
	"github.com/canonical/inventory-service/pkg/status"
	"github.com/canonical/inventory-service/pkg/users"
)

func NewRouter(
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	verifier authentication.TokenVerifierInterface,
	authenticationService authentication.ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		db.TransactionMiddleware(dbClient, logger),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	authentication.NewAPI(authenticationService, logger).RegisterEndpoints(router)

	authenticationMiddleware := authentication.NewMiddleware(verifier, tracer, monitor, logger)
	authorizationMiddleware := authorization.NewMiddleware(
		authorization.NewAuthorizer(s, tracer, monitor, logger),
		tracer,
		monitor,
		logger,
	)

	organizationsAPI := organizations.NewAPI(
		organizations.NewService(s, tracer, monitor, logger),
		logger,
	)

	router.Group(func(r chi.Router) {
		r.Use(authenticationMiddleware.Authenticate())

		users.NewAPI(
			users.NewService(s, tracer, monitor, logger),
			logger,
		).RegisterEndpoints(r)

		organizationsAPI.RegisterEndpoints(r)

		r.Group(func(r chi.Router) {
			r.Use(authorizationMiddleware.RequireOrganization())

			organizationsAPI.RegisterScopedEndpoints(r)

			categories.NewAPI(
				categories.NewService(s, tracer, monitor, logger),
				logger,
			).RegisterEndpoints(r)

			products.NewAPI(
				products.NewService(s, tracer, monitor, logger),
				logger,
			).RegisterEndpoints(r)
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func middlewareCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(
		cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		},
	)
}
