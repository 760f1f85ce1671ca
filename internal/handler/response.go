package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError so all endpoints
// share one content type and one error shape:
//
//	{"error": "validation_error", "message": "Message is required and must be a string"}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/salifshaikh/portfolio/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "validation_error")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation → 400 validation_error (message shown to the client)
//	apperror.ErrUpstream   → 500 upstream_error  (fallback message, cause hidden)
//	anything else          → 500 internal_error
//
// The upstream cause can contain URLs or tokens' error text, so only
// fallbackMsg reaches the client. The cause is logged by the service.
func writeError(w http.ResponseWriter, err error, fallbackMsg string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: appErr.Message,
			})
			return
		case errors.Is(err, apperror.ErrUpstream):
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "upstream_error",
				Message: fallbackMsg,
			})
			return
		}
	}

	// Unknown error: NEVER expose internal details to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: fallbackMsg,
	})
}
