package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/testutil"
	"github.com/alexanderramin/examplan/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanService_PlanIsACopy(t *testing.T) {
	f := newFixture(t)
	plan := f.plan.Plan()
	require.Len(t, plan, 10)
	plan[0].Title = "changed"
	assert.Equal(t, "Topic 1", f.plan.Plan()[0].Title)
	assert.Equal(t, testutil.Date("2026-01-05"), f.plan.Today())
	assert.Empty(t, f.plan.Unscheduled())
}

func TestPlanService_DayReflectsProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	row, err := f.plan.Day(ctx, testutil.Date("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLate, row.Status)

	_, err = f.progress.Complete(ctx, testutil.Date("2026-01-03"), domain.ConfidenceLow)
	require.NoError(t, err)

	row, err = f.plan.Day(ctx, testutil.Date("2026-01-03"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, row.Status)
	require.NotNil(t, row.Record)
	assert.Equal(t, domain.ConfidenceLow, row.Record.Confidence)

	_, err = f.plan.Day(ctx, testutil.Date("2026-02-01"))
	assert.ErrorIs(t, err, domain.ErrDateOutsidePlan)
}

func TestPlanService_TableSummaryCalendar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.progress.Complete(ctx, testutil.Date("2026-01-02"), domain.ConfidenceHigh)
	require.NoError(t, err)

	overdue := f.plan.Table(ctx, views.Filter{Status: views.FilterOverdue})
	assert.Len(t, overdue, 3)

	s := f.plan.Summary(ctx)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 1, s.Done)
	assert.Equal(t, 3, s.Late)

	cal := f.plan.Calendar(ctx, 2026, time.January)
	assert.Len(t, cal.Weeks, 5)
	assert.Equal(t, []views.YearMonth{{Year: 2026, Month: time.January}}, f.plan.Months())
	assert.Len(t, f.plan.Weeks(ctx), 2)

	assert.Contains(t, f.observer.names(), "plan-table")
}
