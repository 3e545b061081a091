package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/planner"
	"github.com/alexanderramin/examplan/internal/status"
	"github.com/alexanderramin/examplan/internal/views"
)

type planService struct {
	plan        planIndex
	unscheduled []domain.SyllabusEntry
	progress    ProgressReader
	time        TimeSettings
	observer    UseCaseObserver
}

func NewPlanService(
	gen *planner.Generator,
	progress ProgressReader,
	ts TimeSettings,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plan:        newPlanIndex(gen.Generate()),
		unscheduled: gen.Unscheduled(),
		progress:    progress,
		time:        ts,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Today() civil.Date { return s.time.today() }

func (s *planService) Plan() []domain.PlanItem { return s.plan.copyItems() }

func (s *planService) Unscheduled() []domain.SyllabusEntry {
	return append([]domain.SyllabusEntry(nil), s.unscheduled...)
}

func (s *planService) Day(ctx context.Context, date civil.Date) (views.Row, error) {
	item, err := s.plan.lookup(date)
	if err != nil {
		return views.Row{}, err
	}
	rec := s.progress.Data().Lookup(date)
	return views.Row{
		Item:   item,
		Status: status.Resolve(item, rec, s.Today()),
		Record: rec,
	}, nil
}

func (s *planService) Rows(ctx context.Context) []views.Row {
	return views.List(s.plan.items, s.progress.Data(), s.Today())
}

func (s *planService) Table(ctx context.Context, filter views.Filter) []views.Row {
	startedAt := time.Now()
	rows := views.Table(s.Rows(ctx), filter)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "plan-table",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   true,
		Fields: map[string]any{
			"status": string(filter.Status),
			"query":  filter.Query,
			"rows":   len(rows),
		},
	})
	return rows
}

func (s *planService) Calendar(ctx context.Context, year int, month time.Month) views.CalendarMonth {
	return views.Calendar(s.plan.items, s.progress.Data(), year, month, s.Today(), s.time.WeekStart)
}

func (s *planService) Months() []views.YearMonth {
	return views.Months(s.plan.items)
}

func (s *planService) Weeks(ctx context.Context) []views.Group {
	return views.GroupByWeek(s.Rows(ctx), s.time.WeekStart)
}

func (s *planService) Summary(ctx context.Context) views.Summary {
	return views.Summarize(s.Rows(ctx))
}
