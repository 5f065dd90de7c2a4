package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Error categories carried in every error body.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryNotFound        = "NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryUnauthorized    = "UNAUTHORIZED"
	CategoryInternal        = "INTERNAL_ERROR"
)

// Error is the JSON body of every failed request.
type Error struct {
	Message       string `json:"error"`
	Category      string `json:"category"`
	CorrelationID string `json:"correlationId"`
	Field         string `json:"field,omitempty"`
}

// NewNotFoundError creates an error with the NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{Message: message, Category: CategoryNotFound, CorrelationID: correlationID}
}

// NewValidationError creates an error with the VALIDATION_ERROR category.
func NewValidationError(message, field, correlationID string) *Error {
	return &Error{Message: message, Category: CategoryValidationError, CorrelationID: correlationID, Field: field}
}

// NewConflictError creates an error with the CONFLICT category.
func NewConflictError(message, correlationID string) *Error {
	return &Error{Message: message, Category: CategoryConflict, CorrelationID: correlationID}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}

// WriteStoreError maps err onto a status code and error body. Unexpected
// errors are logged and answered with a generic 500.
func WriteStoreError(w http.ResponseWriter, r *http.Request, err error) {
	corrID := CorrelationID(r.Context())

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, NewValidationError(verr.Error(), verr.Field, corrID))
	case errors.Is(err, ErrInvalidJSON):
		WriteError(w, http.StatusBadRequest, NewValidationError(ErrInvalidJSON.Error(), "", corrID))
	case errors.Is(err, store.ErrConflict):
		WriteError(w, http.StatusConflict, NewConflictError(err.Error(), corrID))
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, NewNotFoundError(err.Error(), corrID))
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"correlationId", corrID,
		)
		WriteError(w, http.StatusInternalServerError, &Error{
			Message:       "internal server error",
			Category:      CategoryInternal,
			CorrelationID: corrID,
		})
	}
}
