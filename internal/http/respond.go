package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError converts a taxonomy error into a status code and a user-facing
// message. This is the only place errors become messages.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, core.ErrValidation):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case errors.Is(err, core.ErrDuplicate):
		status = http.StatusConflict
		msg = "already exists"
	case errors.Is(err, core.ErrConflict):
		status = http.StatusConflict
		msg = "cannot delete account with existing transactions"
	case errors.Is(err, core.ErrAuth):
		status = http.StatusUnauthorized
		msg = "invalid credentials"
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: msg})
}

func forbidden(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusForbidden, errorResponse{Error: msg})
}
