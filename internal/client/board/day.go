package board

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is how days are typed and printed.
const DayLayout = "2006-01-02"

// Day is a calendar day with no zone attached. The zero Day means "no bound".
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay normalises out-of-range values the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay reads YYYY-MM-DD. An empty string or "-" yields the zero Day.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return Day{}, nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

func (d Day) IsZero() bool { return d == Day{} }

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Start is the first instant of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// End is the last instant of d in loc.
func (d Day) End(loc *time.Location) time.Time {
	return d.Start(loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (d Day) After(o Day) bool {
	if d.year != o.year {
		return d.year > o.year
	}
	if d.month != o.month {
		return d.month > o.month
	}
	return d.day > o.day
}
