package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches every APIError with status 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired is returned when a 401 cleared the stored session.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsAuth reports whether err belongs to the authentication class.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrSessionExpired)
}
