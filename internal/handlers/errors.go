package handlers

import (
	"errors"
	"net/http"

	"poultry-books/internal/httpx"
	"poultry-books/internal/services"
)

// writeServiceError maps service error kinds onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	var ce *services.ConflictError
	switch {
	case errors.As(err, &ve):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
	case errors.As(err, &ce):
		httpx.JSONError(w, http.StatusConflict, ce.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "persistence_error", nil)
	}
}
