package testutil

import (
	"fmt"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/catalog"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/planner"
	"github.com/stretchr/testify/require"
)

// Date parses a YYYY-MM-DD literal and panics on error.
func Date(s string) civil.Date {
	d, err := domain.ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Entry options
type EntryOption func(*domain.SyllabusEntry)

func WithUnits(n int) EntryOption {
	return func(e *domain.SyllabusEntry) {
		e.EstimatedUnits = n
	}
}

func WithKind(k domain.EntryKind) EntryOption {
	return func(e *domain.SyllabusEntry) {
		e.Kind = k
	}
}

func WithCategory(c string) EntryOption {
	return func(e *domain.SyllabusEntry) {
		e.Category = c
	}
}

// Entry builds a one-unit standard Paper I entry.
func Entry(topic string, opts ...EntryOption) domain.SyllabusEntry {
	e := domain.SyllabusEntry{
		Topic:          topic,
		Category:       "Paper I",
		EstimatedUnits: 1,
		Kind:           domain.KindStandard,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// NewTestCatalog builds a catalog from entries, or from n single-unit topics
// named "Topic 1".."Topic n" when entries is empty.
func NewTestCatalog(t *testing.T, n int, entries ...domain.SyllabusEntry) *catalog.Catalog {
	t.Helper()
	if len(entries) == 0 {
		for i := 1; i <= n; i++ {
			entries = append(entries, Entry(fmt.Sprintf("Topic %d", i)))
		}
	}
	cat, err := catalog.New("test", entries)
	require.NoError(t, err)
	return cat
}

// Policy options
type PolicyOption func(*planner.Policy)

func WithRevisionEvery(n int) PolicyOption {
	return func(p *planner.Policy) {
		p.RevisionEvery = n
	}
}

func WithMockEvery(n int) PolicyOption {
	return func(p *planner.Policy) {
		p.MockEvery = n
	}
}

func WithDailyUnits(n int) PolicyOption {
	return func(p *planner.Policy) {
		p.DailyUnits = n
	}
}

func WithBlackout(d civil.Date, label string) PolicyOption {
	return func(p *planner.Policy) {
		if p.Blackouts == nil {
			p.Blackouts = make(map[civil.Date]string)
		}
		p.Blackouts[d] = label
	}
}

// NewTestPolicy returns a policy over [start, end] with one unit per day and
// no special days unless opts add them.
func NewTestPolicy(start, end civil.Date, opts ...PolicyOption) planner.Policy {
	p := planner.Policy{
		Window:     planner.Window{Start: start, End: end},
		DailyUnits: 1,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestPlan generates a plan for cat under policy.
func NewTestPlan(t *testing.T, cat *catalog.Catalog, policy planner.Policy) []domain.PlanItem {
	t.Helper()
	g, err := planner.New(cat, policy)
	require.NoError(t, err)
	return g.Generate()
}
