package web

// errors.go provides unified error response handling for the API.
//
// Handlers call respondError with the raw error; it picks the HTTP status
// from known sentinel errors, logs the technical detail with the request ID
// for correlation, and returns a JSON body with a stable error string.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Camblonie/recruiting-tracker/internal/importer"
	"github.com/Camblonie/recruiting-tracker/internal/logging"
	"github.com/Camblonie/recruiting-tracker/internal/store"
	"github.com/Camblonie/recruiting-tracker/internal/validate"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps err to an HTTP status, logs it, and writes a JSON error.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

// statusFor maps known sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, validate.ErrDuplicateCandidate):
		return http.StatusConflict
	case errors.Is(err, validate.ErrInvalidEmail),
		errors.Is(err, validate.ErrInvalidPhoneNumber),
		errors.Is(err, validate.ErrMissingRequiredField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importer.ErrInvalidEncoding):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes a JSON error response with an explicit status and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("request rejected",
		"path", r.URL.Path,
		"status", status,
		"error", message,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode", "error", err)
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
