package board

import (
	"time"

	"github.com/marmota/failboard/internal/client/models"
)

// All is the category criterion that matches every record.
const All models.Category = ""

// Criteria narrows the failure list. The zero value matches everything.
type Criteria struct {
	Category models.Category
	Start    Day
	End      Day
}

// Active reports whether any criterion is applied.
func (c Criteria) Active() bool {
	return c.Category != All || !c.Start.IsZero() || !c.End.IsZero()
}

func (c Criteria) validate() error {
	if c.Category != All && !c.Category.Valid() {
		return models.ErrUnknownCategory
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.Start.After(c.End) {
		return ErrInvalidRange
	}
	return nil
}

type window struct {
	from, to       time.Time
	hasFrom, hasTo bool
}

func (c Criteria) window(loc *time.Location) window {
	var w window
	if !c.Start.IsZero() {
		w.from, w.hasFrom = c.Start.Start(loc), true
	}
	if !c.End.IsZero() {
		w.to, w.hasTo = c.End.End(loc), true
	}
	return w
}

func (w window) contains(t time.Time) bool {
	if w.hasFrom && t.Before(w.from) {
		return false
	}
	if w.hasTo && t.After(w.to) {
		return false
	}
	return true
}

// Matches reports whether f passes c. Day bounds are read in loc; a record
// without a creation time counts as created at the Unix epoch.
func (c Criteria) Matches(f models.Failure, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	return c.matches(f, c.window(loc))
}

func (c Criteria) matches(f models.Failure, w window) bool {
	if c.Category != All && f.Category != c.Category {
		return false
	}
	return w.contains(f.Timestamp())
}

// Filter returns the records that pass c, in their original order. records is
// not modified.
func Filter(records []models.Failure, c Criteria, loc *time.Location) []models.Failure {
	if loc == nil {
		loc = time.Local
	}
	w := c.window(loc)

	out := make([]models.Failure, 0, len(records))
	for _, f := range records {
		if c.matches(f, w) {
			out = append(out, f)
		}
	}
	return out
}
