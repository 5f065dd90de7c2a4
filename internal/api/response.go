package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// ErrInvalidJSON is returned by DecodeJSON when the body cannot be decoded.
var ErrInvalidJSON = errors.New("invalid JSON body")

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// SuccessResponse is the body returned by deletes.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CountResponse is the body returned by bulk updates.
type CountResponse struct {
	Count int `json:"count"`
}

// WriteSuccess writes {"success": true} with status 200.
func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DecodeJSON decodes the request body into v. Any decoding failure, including
// an empty body, wraps ErrInvalidJSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	return nil
}
