package api

import (
	"errors"
	"fmt"
)

var (
	// -- Authentication --
	ErrUnauthorized = errors.New("unauthorized")

	// -- Response validation --
	ErrInvalidResponse = errors.New("invalid response from backend")

	// -- Client misuse --
	ErrEmptyBaseURL = errors.New("api base url is required")
)

// APIError carries a non-2xx response. The backend returns free-text
// messages; they are surfaced as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}
