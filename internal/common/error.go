package common

import "errors"

var (
	// ErrNotFound reports a missing record, locally or on the backend.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken reports a malformed or badly signed bearer token.
	ErrInvalidToken = errors.New("invalid token")
)
