package models

import (
	"fmt"
	"strings"
)

// Status is the resolution state of a failure.
type Status string

const (
	StatusPending    Status = "Pendente"
	StatusInProgress Status = "Em Andamento"
	StatusResolved   Status = "Resolvido"
)

func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusResolved}
}

var statusAliases = map[string]Status{
	"pendente":     StatusPending,
	"pending":      StatusPending,
	"em andamento": StatusInProgress,
	"andamento":    StatusInProgress,
	"in progress":  StatusInProgress,
	"in-progress":  StatusInProgress,
	"resolvido":    StatusResolved,
	"resolved":     StatusResolved,
}

// ParseStatus resolves a backend label or an English alias. An empty string is
// Pending, which is what the backend means when it omits the field.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusPending, nil
	}
	if st, ok := statusAliases[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }
