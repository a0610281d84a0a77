package api

import (
	"encoding/json"
	"errors"
)

// ErrSessionExpired is returned when the backend rejects the stored
// credential. By the time a caller sees it the session store is empty and the
// auth-expired handler has run, so callers treat it as "session ended" rather
// than an error to display.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Detail is the server-supplied human-readable message, or the
	// per-operation fallback when the response carried none.
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseError builds an APIError from a response body. The backend wraps
// error messages in a {"detail": "..."} envelope.
func parseError(statusCode int, body []byte, fallback string) error {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return &APIError{StatusCode: statusCode, Detail: envelope.Detail}
	}
	return &APIError{StatusCode: statusCode, Detail: fallback}
}
