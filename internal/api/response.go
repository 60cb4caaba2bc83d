package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	errCodeInvalidRequest = "invalid_request"
	errCodeValidation     = "validation_failed"
	errCodeNotFound       = "not_found"
	errCodeInternal       = "internal_error"
	errCodeUnavailable    = "service_unavailable"
	errCodeTimeout        = "timeout"
	errCodeConflict       = "conflict"
	errCodeTooLarge       = "request_too_large"
)

// Error represents a normalized API error response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the envelope of every API response.
type Response struct {
	// Success indicates whether the request was handled successfully
	Success bool `json:"success"`
	// Data holds the result when successful
	Data any `json:"data,omitempty"`
	// Error is the normalized error payload when the request failed
	Error *Error `json:"error,omitempty"`
}

// decodeJSONBody decodes a request body with strict unknown-field and trailing-token checks.
func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err != io.EOF {
		return ErrMultipleJSONObjects
	}

	return nil
}

// writeJSON writes a JSON response and logs serialization failures.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to encode JSON response")
	}
}

// respond writes a successful envelope
func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// respondError writes an error envelope
func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Success: false, Error: &Error{Code: code, Message: message}})
}

// respondDecodeError maps a body decoding failure to 413 or 400
func respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, errCodeTooLarge, "request body too large")
		return
	}

	message := ErrInvalidRequestBody.Error()
	if errors.Is(err, ErrMultipleJSONObjects) {
		message = err.Error()
	}

	respondError(w, http.StatusBadRequest, errCodeInvalidRequest, message)
}
