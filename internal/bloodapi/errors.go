package bloodapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx response from the backing service.
// Handlers branch on the status code: 404 not found, 403 forbidden, 409
// conflict on duplicate email.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blood service returned %d: %s", e.StatusCode, e.Message)
}

func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func IsForbidden(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

func IsConflict(err error) bool {
	return IsStatus(err, http.StatusConflict)
}

// messageFromBody pulls a human-readable message out of a failed response:
// the JSON "message" field when present, otherwise the body text.
func messageFromBody(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	if s := strings.TrimSpace(string(data)); s != "" {
		return s
	}

	return "request failed"
}
