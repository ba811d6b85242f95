// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/http/response"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/pkg/authentication"
)

// userDetails is the public view of a user row. The password hash never
// appears in any payload.
type userDetails struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Onboarded bool      `json:"onboarded"`
	CreatedAt time.Time `json:"created_at"`
}

type userOrganization struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Domain         string `json:"domain,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Role           string `json:"role"`
}

type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/users/details", a.details)
	mux.Get("/api/v0/users/organizations", a.organizations)
	mux.Patch("/api/v0/users/onboard", a.onboard)
}

func (a *API) details(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthenticationError("missing authentication"), a.logger)
		return
	}

	user, err := a.service.GetDetails(r.Context(), userID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": userDetails{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Onboarded: user.Onboarded,
			CreatedAt: user.CreatedAt,
		},
	})
}

func (a *API) organizations(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthenticationError("missing authentication"), a.logger)
		return
	}

	orgs, err := a.service.ListOrganizations(r.Context(), userID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	payload := make([]userOrganization, 0, len(orgs))
	for _, o := range orgs {
		payload = append(payload, userOrganization{
			OrganizationID: o.OrganizationID,
			Name:           o.Name,
			Slug:           o.Slug,
			Domain:         o.Domain,
			ImageURL:       o.ImageURL,
			Role:           o.Role.String(),
		})
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"organizations": payload})
}

func (a *API) onboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthenticationError("missing authentication"), a.logger)
		return
	}

	if err := a.service.Onboard(r.Context(), userID); err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
