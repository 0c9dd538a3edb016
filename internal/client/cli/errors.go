package cli

import (
	"errors"

	"github.com/marmota/failboard/internal/client/httpx"
	"github.com/marmota/failboard/internal/client/models"
)

var errUsage = errors.New("usage")

type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }
func (e usageError) Unwrap() error { return errUsage }

// alertError prefixes a failed action to the user-facing cause.
type alertError struct {
	action string
	err    error
}

func alert(action string, err error) error {
	return &alertError{action: action, err: err}
}

func (e *alertError) Error() string { return e.action + ": " + describe(e.err) }
func (e *alertError) Unwrap() error { return e.err }

// describe turns err into a line for the user.
func describe(err error) string {
	var (
		ae     *alertError
		apiErr *httpx.APIError
	)
	switch {
	case errors.As(err, &ae):
		return ae.Error()
	case errors.Is(err, httpx.ErrSessionExpired):
		return "session expired, please log in again"
	case errors.Is(err, models.ErrDecode):
		return "unexpected response from the server"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}
