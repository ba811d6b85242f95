// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package categories

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/http/response"
	"github.com/canonical/inventory-service/internal/logging"
	"github.com/canonical/inventory-service/internal/types"
	"github.com/canonical/inventory-service/pkg/authorization"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type categoryView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type productView struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
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

// RegisterEndpoints expects a router that already runs the organization
// authorization middleware.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/organizations/{slug}/categories", a.create)
	mux.Get("/api/v0/organizations/{slug}/categories", a.list)
	mux.Get("/api/v0/organizations/{slug}/categories/{id}", a.details)
	mux.Put("/api/v0/organizations/{slug}/categories/{id}", a.update)
	mux.Delete("/api/v0/organizations/{slug}/categories/{id}", a.delete)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	category, err := a.service.Create(r.Context(), &types.Category{
		OrganizationID: authCtx.Organization.ID,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{"category": viewOf(category)})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	categories, err := a.service.List(r.Context(), authCtx.Organization.ID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	payload := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		payload = append(payload, viewOf(c))
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": payload})
}

func (a *API) details(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	category, products, err := a.service.GetDetails(r.Context(), chi.URLParam(r, "id"), authCtx.Organization.ID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	productPayload := make([]productView, 0, len(products))
	for _, p := range products {
		productPayload = append(productPayload, productView{ID: p.ID, Code: p.Code, Name: p.Name, Stock: p.Stock})
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"category": viewOf(category),
		"products": productPayload,
	})
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	err := a.service.Update(r.Context(), &types.Category{
		ID:             chi.URLParam(r, "id"),
		OrganizationID: authCtx.Organization.ID,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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

	if err := a.service.Delete(r.Context(), chi.URLParam(r, "id"), authCtx.Organization.ID); err != nil {
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

func viewOf(c *types.Category) categoryView {
	return categoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
	}
}
