// Package clock supplies "now" and "today" to the planner and ledger so both
// can be tested with frozen dates.
package clock

import (
	"time"

	"cloud.google.com/go/civil"
)

type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// FixedDate returns a Fixed clock at noon UTC on d.
func FixedDate(d civil.Date) Fixed {
	return Fixed(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC))
}

// Today returns the calendar date of c.Now() in loc. A nil loc means local time.
func Today(c Clock, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.Local
	}
	return civil.DateOf(c.Now().In(loc))
}
