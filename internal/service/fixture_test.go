package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/clock"
	"github.com/alexanderramin/examplan/internal/ledger"
	"github.com/alexanderramin/examplan/internal/planner"
	"github.com/alexanderramin/examplan/internal/storage"
	"github.com/alexanderramin/examplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []string
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}

type fixture struct {
	ledger   *ledger.Ledger
	plan     PlanService
	progress ProgressService
	observer *recordingObserver
}

// newFixture wires a ten-day January plan (revision every 5th day) over an
// in-memory store with today fixed at 2026-01-05.
func newFixture(t *testing.T, opts ...ledger.Option) fixture {
	t.Helper()
	gen, err := planner.New(testutil.NewTestCatalog(t, 8), testutil.NewTestPolicy(
		testutil.Date("2026-01-01"), testutil.Date("2026-01-10"),
		testutil.WithRevisionEvery(5),
	))
	require.NoError(t, err)

	c := clock.FixedDate(testutil.Date("2026-01-05"))
	ts := TimeSettings{Clock: c, Location: time.UTC, WeekStart: time.Sunday}
	opts = append([]ledger.Option{ledger.WithClock(c), ledger.WithRetry(1, 0)}, opts...)
	l := ledger.New(storage.NewMemory(), "progressData", opts...)
	obs := &recordingObserver{}

	return fixture{
		ledger:   l,
		plan:     NewPlanService(gen, l, ts, obs),
		progress: NewProgressService(l, gen.Generate(), nil, ts, obs),
		observer: obs,
	}
}
