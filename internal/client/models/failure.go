package models

import (
	"time"
)

// Display layouts used by the dashboard (pt-BR).
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04:05"
)

// Failure is a maintenance failure record as held by the client.
type Failure struct {
	ID          string
	Category    Category
	Description string
	// CreatedAt is zero when the backend sent no usable timestamp.
	CreatedAt time.Time
	Status    Status
}

// Date formats CreatedAt as a calendar day in loc (time.Local when nil).
func (f Failure) Date(loc *time.Location) string {
	if f.CreatedAt.IsZero() {
		return ""
	}
	return f.CreatedAt.In(orLocal(loc)).Format(DateLayout)
}

// Time formats CreatedAt as a wall-clock time in loc (time.Local when nil).
func (f Failure) Time(loc *time.Location) string {
	if f.CreatedAt.IsZero() {
		return ""
	}
	return f.CreatedAt.In(orLocal(loc)).Format(TimeLayout)
}

// Timestamp is CreatedAt for comparisons, with a missing value mapped to the
// Unix epoch.
func (f Failure) Timestamp() time.Time {
	if f.CreatedAt.IsZero() {
		return time.Unix(0, 0)
	}
	return f.CreatedAt
}

// NewFailure is the body of a create request.
type NewFailure struct {
	Category    Category `json:"tipo" validate:"required,category"`
	Description string   `json:"descricao" validate:"notblank"`
}

// StatusUpdate is the body of a status change request.
type StatusUpdate struct {
	Status Status `json:"status"`
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
