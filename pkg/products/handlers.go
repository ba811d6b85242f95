// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package products

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

type productRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Stock       int64  `json:"stock" validate:"omitempty,gte=0"`
}

type productView struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

type stockView struct {
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
	mux.Post("/api/v0/organizations/{slug}/products", a.create)
	mux.Put("/api/v0/organizations/{slug}/products/{id}", a.update)
	mux.Get("/api/v0/organizations/{slug}/products", a.list)
	mux.Get("/api/v0/organizations/{slug}/product-stock", a.stockReport)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	product, err := a.service.Create(r.Context(), &types.Product{
		OrganizationID: authCtx.Organization.ID,
		CategoryID:     req.CategoryID,
		AuthorID:       authCtx.UserID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Stock:          req.Stock,
	})
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{"product": viewOf(product)})
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	err := a.service.Update(r.Context(), &types.Product{
		ID:             chi.URLParam(r, "id"),
		OrganizationID: authCtx.Organization.ID,
		CategoryID:     req.CategoryID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Stock:          req.Stock,
	})
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	products, err := a.service.ListByOrganization(r.Context(), authCtx.Organization.ID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	payload := make([]productView, 0, len(products))
	for _, p := range products {
		payload = append(payload, viewOf(p))
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"products": payload})
}

func (a *API) stockReport(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authorization.FromContext(r.Context())
	if !ok {
		response.WriteError(w, apperrors.NewAuthorizationError("missing organization context"), a.logger)
		return
	}

	if err := authCtx.RequireRole(types.RoleAdmin, types.RoleBilling); err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	report, err := a.service.StockReport(r.Context(), authCtx.Organization.ID)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	payload := make([]stockView, 0, len(report))
	for _, row := range report {
		payload = append(payload, stockView{Code: row.Code, Name: row.Name, Stock: row.Stock})
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"product_stock": payload})
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

func viewOf(p *types.Product) productView {
	return productView{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}
