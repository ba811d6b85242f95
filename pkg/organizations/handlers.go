// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/http/response"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/types"
	"github.com/canonical/inventory-service/pkg/authentication"
	"github.com/canonical/inventory-service/pkg/authorization"
)

type createRequest struct {
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url" validate:"omitempty,url"`
	Domain           string `json:"domain" validate:"omitempty,fqdn"`
	AutoJoinByDomain bool   `json:"auto_join_by_domain"`
}

type organizationView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description,omitempty"`
	ImageURL         string `json:"image_url,omitempty"`
	Domain           string `json:"domain,omitempty"`
	AutoJoinByDomain bool   `json:"auto_join_by_domain"`
}

type memberView struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterEndpoints registers the routes that only need an authenticated
// user.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/organizations", a.create)
	mux.Get("/api/v0/organizations", a.list)
}

// RegisterScopedEndpoints registers the routes that need a resolved
// organization membership. The router applies the authorization middleware.
func (a *API) RegisterScopedEndpoints(mux chi.Router) {
	mux.Get("/api/v0/organizations/{slug}/members", a.listMembers)
	mux.Delete("/api/v0/organizations/{slug}", a.delete)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthenticationError("missing authentication"), a.logger)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	org, err := a.service.Create(r.Context(), &types.Organization{
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		Domain:           req.Domain,
		AutoJoinByDomain: req.AutoJoinByDomain,
		OwnerID:          userID,
	})
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{"organization": viewOf(org)})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	page := uint64(0)
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			response.WriteError(w, apperrors.NewValidationError("page must be a non-negative integer"), a.logger)
			return
		}
		page = parsed
	}

	orgs, err := a.service.List(r.Context(), query, page)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	payload := make([]organizationView, 0, len(orgs))
	for _, o := range orgs {
		payload = append(payload, viewOf(o))
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"organizations": payload})
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	members, err := a.service.ListMembers(r.Context(), authCtx.Organization.ID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	payload := make([]memberView, 0, len(members))
	for _, m := range members {
		payload = append(payload, memberView{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
			Role:   m.Role.String(),
		})
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"members": payload})
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	if err := authCtx.RequireRole(types.RoleAdmin); err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	if err := a.service.Delete(r.Context(), authCtx.Organization.ID); err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) fieldErrors(req interface{}) []string {
	err := a.validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid payload"}
	}

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag()))
	}
	return fields
}

func viewOf(o *types.Organization) organizationView {
	return organizationView{
		ID:               o.ID,
		Name:             o.Name,
		Slug:             o.Slug,
		Description:      o.Description,
		ImageURL:         o.ImageURL,
		Domain:           o.Domain,
		AutoJoinByDomain: o.AutoJoinByDomain,
	}
}
