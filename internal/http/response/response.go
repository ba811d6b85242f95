// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package response maps service errors to wire-level status codes and
// messages. It is the only place where error kinds become HTTP statuses;
// unexpected errors surface as 500 with no internal detail.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/logging"
)

type errorBody struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError writes err according to its kind. Field-level detail is only
// ever attached to validation errors.
func WriteError(w http.ResponseWriter, err error, logger logging.LoggerInterface) {
	WriteFieldErrors(w, err, nil, logger)
}

func WriteFieldErrors(w http.ResponseWriter, err error, fields []string, logger logging.LoggerInterface) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message()
		switch appErr.Kind() {
		case apperrors.KindValidation:
			status = http.StatusBadRequest
		case apperrors.KindAuthentication:
			status = http.StatusUnauthorized
		case apperrors.KindAuthorization:
			status = http.StatusForbidden
		case apperrors.KindNotFound:
			status = http.StatusNotFound
		case apperrors.KindConflict:
			status = http.StatusConflict
		default:
			message = "internal server error"
		}
	}

	if status == http.StatusInternalServerError {
		logger.Errorf("unexpected error: %v", err)
	}

	body := errorBody{Status: status, Message: message}
	if status == http.StatusBadRequest {
		body.Errors = fields
	}

	WriteJSON(w, status, body)
}
