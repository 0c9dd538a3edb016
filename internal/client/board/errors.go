package board

import "errors"

var (
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrInFlight         = errors.New("operation already in progress")
	ErrNotReady         = errors.New("failure list is not loaded")
	ErrNothingToRetry   = errors.New("failure list did not fail to load")
	ErrInvalidRange     = errors.New("start date is after end date")
)
