package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/clock"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/ledger"
	"github.com/alexanderramin/examplan/internal/views"
)

// PlanService answers read-only questions about the generated plan joined
// with the current progress.
type PlanService interface {
	Today() civil.Date
	Plan() []domain.PlanItem
	Unscheduled() []domain.SyllabusEntry
	Day(ctx context.Context, date civil.Date) (views.Row, error)
	Rows(ctx context.Context) []views.Row
	Table(ctx context.Context, filter views.Filter) []views.Row
	Calendar(ctx context.Context, year int, month time.Month) views.CalendarMonth
	Months() []views.YearMonth
	Weeks(ctx context.Context) []views.Group
	Summary(ctx context.Context) views.Summary
}

// ProgressService owns every mutation of the progress ledger.
type ProgressService interface {
	Load(ctx context.Context) ledger.LoadResult
	Complete(ctx context.Context, date civil.Date, confidence domain.Confidence) (views.Row, error)
	Uncomplete(ctx context.Context, date civil.Date) (views.Row, error)
	History(ctx context.Context, limit int) ([]*domain.ProgressEvent, error)
}

// ProgressReader is the read side of the ledger.
type ProgressReader interface {
	Data() domain.ProgressData
}

// TimeSettings decides what "today" is and how weeks are laid out.
type TimeSettings struct {
	Clock     clock.Clock
	Location  *time.Location
	WeekStart time.Weekday
}

func (ts TimeSettings) today() civil.Date {
	c := ts.Clock
	if c == nil {
		c = clock.System{}
	}
	return clock.Today(c, ts.Location)
}
