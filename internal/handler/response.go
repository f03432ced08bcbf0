package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-sites-app/internal/data"
	"go-sites-app/internal/middleware"
	"go-sites-app/internal/service"
	"go-sites-app/internal/translate"

	"github.com/go-chi/chi/v5"
)

// defaultLanguage is used when a request carries no lang parameter. The
// frontends are Portuguese-first.
const defaultLanguage = "pt"

func respondJSON(w http.ResponseWriter, code int, v interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

func decodeJSON(r *http.Request, dst interface{}) *middleware.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &middleware.AppError{Err: err, Message: "Invalid JSON body", Code: http.StatusBadRequest}
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, *middleware.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &middleware.AppError{Err: err, Message: "Invalid id", Code: http.StatusBadRequest}
	}
	return id, nil
}

func languageParam(r *http.Request) string {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		return defaultLanguage
	}
	return lang
}

// serviceError maps domain errors onto the HTTP error taxonomy. Anything
// unrecognized is a 500 with the supplied message.
func serviceError(err error, message string) *middleware.AppError {
	switch {
	case service.IsValidationError(err):
		return &middleware.AppError{Err: err, Message: err.Error(), Code: http.StatusBadRequest}
	case data.IsNotFound(err):
		return &middleware.AppError{Err: err, Message: "Not found", Code: http.StatusNotFound}
	case errors.Is(err, translate.ErrUnavailable):
		return &middleware.AppError{Err: err, Message: "Translation service is not configured", Code: http.StatusServiceUnavailable}
	default:
		return &middleware.AppError{Err: err, Message: message, Code: http.StatusInternalServerError}
	}
}
