package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/ledger"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/status"
	"github.com/alexanderramin/examplan/internal/views"
)

// ErrHistoryUnavailable is returned by History when the configured store
// keeps no event log.
var ErrHistoryUnavailable = errors.New("progress history requires the sqlite store")

type progressService struct {
	ledger   *ledger.Ledger
	plan     planIndex
	events   repository.ProgressEventRepo
	time     TimeSettings
	observer UseCaseObserver
}

// NewProgressService wraps l. events may be nil when the store keeps no
// history.
func NewProgressService(
	l *ledger.Ledger,
	plan []domain.PlanItem,
	events repository.ProgressEventRepo,
	ts TimeSettings,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		ledger:   l,
		plan:     newPlanIndex(plan),
		events:   events,
		time:     ts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) Load(ctx context.Context) ledger.LoadResult {
	startedAt := time.Now()
	res := s.ledger.Load(ctx)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "load-progress",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   true,
		Err:       errors.Join(res.Warnings...),
		Fields: map[string]any{
			"records":  len(res.Data),
			"warnings": len(res.Warnings),
		},
	})
	return res
}

func (s *progressService) Complete(ctx context.Context, date civil.Date, confidence domain.Confidence) (row views.Row, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "complete-day", startedAt, err, map[string]any{
			"date":       date.String(),
			"confidence": string(confidence),
		})
	}()

	var item domain.PlanItem
	item, err = s.plan.lookup(date)
	if err != nil {
		return views.Row{}, err
	}
	var data domain.ProgressData
	data, err = s.ledger.MarkComplete(ctx, date, confidence)
	if err != nil {
		return views.Row{}, fmt.Errorf("completing %s: %w", date, err)
	}
	return s.row(item, data), nil
}

func (s *progressService) Uncomplete(ctx context.Context, date civil.Date) (row views.Row, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "uncomplete-day", startedAt, err, map[string]any{
			"date": date.String(),
		})
	}()

	var item domain.PlanItem
	item, err = s.plan.lookup(date)
	if err != nil {
		return views.Row{}, err
	}
	var data domain.ProgressData
	data, err = s.ledger.MarkIncomplete(ctx, date)
	if err != nil {
		return views.Row{}, fmt.Errorf("uncompleting %s: %w", date, err)
	}
	return s.row(item, data), nil
}

func (s *progressService) History(ctx context.Context, limit int) ([]*domain.ProgressEvent, error) {
	if s.events == nil {
		return nil, ErrHistoryUnavailable
	}
	events, err := s.events.ListByUser(ctx, s.ledger.Key(), limit)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return events, nil
}

func (s *progressService) row(item domain.PlanItem, data domain.ProgressData) views.Row {
	rec := data.Lookup(item.Date)
	return views.Row{
		Item:   item,
		Status: status.Resolve(item, rec, s.time.today()),
		Record: rec,
	}
}

func (s *progressService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
