package pickhero

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the classified error returned by every gateway call. A zero
// StatusCode means the request never produced a response (transport
// failure, timeout).
type APIError struct {
	StatusCode int
	Message    string
	// Errors carries field-level validation detail on 422 responses.
	Errors map[string][]string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("pickhero: %s", e.Message)
	}
	return fmt.Sprintf("pickhero: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether the warehouse answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsValidationError reports whether the warehouse rejected the payload.
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// IsAuthError reports whether the token was rejected.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a gateway 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// IsValidationError reports whether err is a gateway 422.
func IsValidationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsValidationError()
}

// IsAuthError reports whether err is a gateway 401 or 403.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}
