package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("malformed payload")

	ErrUnknownStatus   = errors.New("unknown status")
	ErrUnknownCategory = errors.New("unknown category")
	ErrDuplicateID     = errors.New("duplicate id")
)

// DecodeError reports a backend payload that could not be turned into a
// domain value.
type DecodeError struct {
	Entity string
	Err    error
}

func NewDecodeError(entity string, err error) *DecodeError {
	return &DecodeError{Entity: entity, Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Entity, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
