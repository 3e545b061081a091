package planner

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
)

const (
	DefaultRevisionLabel = "Weekly Revision"
	DefaultMockLabel     = "Full-Length Mock Test"
	DefaultFallbackLabel = "Consolidation Revision"

	// maxWindowDays bounds the window so a typo in a year cannot make
	// generation walk centuries.
	maxWindowDays = 3660
)

// Window is an inclusive calendar range.
type Window struct {
	Start civil.Date
	End   civil.Date
}

// Days returns the number of dates in the window.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return w.End.DaysSince(w.Start) + 1
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d civil.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Policy parameterizes day placement. Day indexes are 1-based from the
// window start: with RevisionEvery=7 the 7th, 14th, ... days are revision.
type Policy struct {
	Window Window

	// DailyUnits is the effort budget one study day absorbs.
	DailyUnits int

	// RevisionEvery and MockEvery set the cadence of special days; 0 disables.
	// A day matching both is a mock day.
	RevisionEvery int
	MockEvery     int

	// Rounds is how many passes over the catalog to schedule before falling
	// back to consolidation revision. Values below 1 mean a single pass.
	Rounds int

	// Blackouts are fixed dates that become labelled revision days. They take
	// precedence over every cadence. Dates outside the window are ignored.
	Blackouts map[civil.Date]string

	RevisionLabel string
	MockLabel     string
	FallbackLabel string
}

// DefaultPolicy covers the 2026 exam-preparation year.
func DefaultPolicy() Policy {
	return Policy{
		Window: Window{
			Start: civil.Date{Year: 2026, Month: 1, Day: 1},
			End:   civil.Date{Year: 2026, Month: 12, Day: 31},
		},
		DailyUnits:    1,
		RevisionEvery: 7,
		MockEvery:     30,
		Rounds:        1,
		RevisionLabel: DefaultRevisionLabel,
		MockLabel:     DefaultMockLabel,
		FallbackLabel: DefaultFallbackLabel,
	}
}

// Validate reports every structural problem with the policy.
func (p Policy) Validate() error {
	var errs []error

	switch {
	case !p.Window.Start.IsValid() || !p.Window.End.IsValid():
		errs = append(errs, fmt.Errorf("window start and end are required"))
	case p.Window.End.Before(p.Window.Start):
		errs = append(errs, fmt.Errorf("window end %s is before start %s", p.Window.End, p.Window.Start))
	case p.Window.Days() > maxWindowDays:
		errs = append(errs, fmt.Errorf("window spans %d days (max %d)", p.Window.Days(), maxWindowDays))
	}
	if p.DailyUnits <= 0 {
		errs = append(errs, fmt.Errorf("daily_units must be positive, got %d", p.DailyUnits))
	}
	if p.RevisionEvery < 0 {
		errs = append(errs, fmt.Errorf("revision_every must not be negative, got %d", p.RevisionEvery))
	}
	if p.MockEvery < 0 {
		errs = append(errs, fmt.Errorf("mock_every must not be negative, got %d", p.MockEvery))
	}
	if p.Rounds < 0 {
		errs = append(errs, fmt.Errorf("rounds must not be negative, got %d", p.Rounds))
	}
	for d := range p.Blackouts {
		if !d.IsValid() {
			errs = append(errs, fmt.Errorf("blackout date %v is not a valid date", d))
		}
	}

	if len(errs) > 0 {
		return &domain.ConfigurationError{Source: "planner policy", Problems: errs}
	}
	return nil
}

func (p Policy) normalized() Policy {
	if p.Rounds < 1 {
		p.Rounds = 1
	}
	p.RevisionLabel = domain.CoalesceStr(p.RevisionLabel, DefaultRevisionLabel)
	p.MockLabel = domain.CoalesceStr(p.MockLabel, DefaultMockLabel)
	p.FallbackLabel = domain.CoalesceStr(p.FallbackLabel, DefaultFallbackLabel)

	blackouts := make(map[civil.Date]string, len(p.Blackouts))
	for d, label := range p.Blackouts {
		blackouts[d] = domain.CoalesceStr(label, p.RevisionLabel)
	}
	p.Blackouts = blackouts
	return p
}
