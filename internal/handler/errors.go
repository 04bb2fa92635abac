package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blogapi/internal/apperr"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the error taxonomy to status codes. Unexpected
// faults are logged with detail and surfaced generically.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, apperr.ErrConflict):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
