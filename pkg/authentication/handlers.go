// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/http/response"
	"github.com/canonical/inventory-service/internal/logging"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type sessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
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

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/users", a.register)
	mux.Post("/api/v0/sessions/password", a.createSession)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	userID, err := a.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]string{"user_id": userID})
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, apperrors.NewValidationError("invalid request body"), a.logger)
		return
	}

	if fields := a.fieldErrors(req); len(fields) > 0 {
		response.WriteFieldErrors(w, apperrors.NewValidationError("validation error"), fields, a.logger)
		return
	}

	token, err := a.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, err, a.logger)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
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
