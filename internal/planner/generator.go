// Package planner turns a syllabus catalog into a fixed day-by-day study
// calendar. Generation is pure: the same catalog and policy always produce
// the same plan.
package planner

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/catalog"
	"github.com/alexanderramin/examplan/internal/domain"
)

// Generator builds plans from a frozen catalog and policy.
type Generator struct {
	entries []domain.SyllabusEntry
	policy  Policy
}

// New validates the policy and returns a Generator. Configuration problems
// are reported as *domain.ConfigurationError and are meant to stop startup.
func New(cat *catalog.Catalog, policy Policy) (*Generator, error) {
	if cat == nil {
		return nil, &domain.ConfigurationError{Source: "planner", Problems: []error{fmt.Errorf("catalog is required")}}
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Generator{entries: cat.Entries(), policy: policy.normalized()}, nil
}

// Policy returns the effective (normalized) policy.
func (g *Generator) Policy() Policy {
	p := g.policy
	blackouts := make(map[civil.Date]string, len(p.Blackouts))
	for d, label := range p.Blackouts {
		blackouts[d] = label
	}
	p.Blackouts = blackouts
	return p
}

// Generate returns one PlanItem per window date in ascending order.
func (g *Generator) Generate() []domain.PlanItem {
	items, _ := g.build()
	return items
}

// Unscheduled returns the catalog entries the window ended before reaching.
func (g *Generator) Unscheduled() []domain.SyllabusEntry {
	_, touched := g.build()
	var out []domain.SyllabusEntry
	for i, e := range g.entries {
		if !touched[i] {
			out = append(out, e)
		}
	}
	return out
}

// touch records one entry's share of a study day.
type touch struct {
	entry domain.SyllabusEntry
	round int
	part  int
	parts int
}

// cursor walks the catalog, Rounds times over, remembering how much of the
// current entry is still unscheduled.
type cursor struct {
	entries   []domain.SyllabusEntry
	rounds    int
	round     int
	idx       int
	remaining int
	part      int
	parts     int
}

func (c *cursor) exhausted() bool {
	return len(c.entries) == 0 || c.round > c.rounds
}

func (c *cursor) advance() {
	c.idx++
	c.remaining = 0
	if c.idx == len(c.entries) {
		c.idx = 0
		c.round++
	}
}

func (g *Generator) build() ([]domain.PlanItem, map[int]bool) {
	p := g.policy
	cur := &cursor{entries: g.entries, rounds: p.Rounds, round: 1}
	touched := make(map[int]bool, len(g.entries))

	days := p.Window.Days()
	items := make([]domain.PlanItem, 0, days)
	for i := 1; i <= days; i++ {
		date := p.Window.Start.AddDays(i - 1)

		if item, ok := g.specialDay(date, i); ok {
			items = append(items, item)
			continue
		}
		if cur.exhausted() {
			items = append(items, domain.PlanItem{Date: date, Title: p.FallbackLabel, Type: domain.DayRevision})
			continue
		}

		var day []touch
		capacity := p.DailyUnits
		for capacity > 0 && !cur.exhausted() {
			e := cur.entries[cur.idx]
			if cur.remaining == 0 {
				cur.remaining = e.EstimatedUnits
				cur.part = 0
				cur.parts = 1 + ceilDiv(e.EstimatedUnits-min(capacity, e.EstimatedUnits), p.DailyUnits)
			}
			take := min(capacity, cur.remaining)
			cur.part++
			day = append(day, touch{entry: e, round: cur.round, part: cur.part, parts: cur.parts})
			touched[cur.idx] = true

			cur.remaining -= take
			capacity -= take
			if cur.remaining == 0 {
				cur.advance()
			}
		}
		items = append(items, studyItem(date, day))
	}
	return items, touched
}

func (g *Generator) specialDay(date civil.Date, dayIndex int) (domain.PlanItem, bool) {
	p := g.policy
	if label, ok := p.Blackouts[date]; ok {
		return domain.PlanItem{Date: date, Title: label, Type: domain.DayRevision}, true
	}
	if p.MockEvery > 0 && dayIndex%p.MockEvery == 0 {
		return domain.PlanItem{Date: date, Title: p.MockLabel, Type: domain.DayMock}, true
	}
	if p.RevisionEvery > 0 && dayIndex%p.RevisionEvery == 0 {
		return domain.PlanItem{Date: date, Title: p.RevisionLabel, Type: domain.DayRevision}, true
	}
	return domain.PlanItem{}, false
}

func studyItem(date civil.Date, day []touch) domain.PlanItem {
	item := domain.PlanItem{Date: date, Type: dayType(day)}

	labels := make([]string, 0, len(day))
	var categories []string
	seenCat := make(map[string]bool)
	for _, t := range day {
		labels = append(labels, t.label())
		item.Topics = append(item.Topics, t.entry.Topic)
		if !seenCat[t.entry.Category] {
			seenCat[t.entry.Category] = true
			categories = append(categories, t.entry.Category)
		}
	}
	item.Title = strings.Join(labels, " + ")
	item.Category = strings.Join(categories, " / ")

	if len(day) == 1 && day[0].parts > 1 {
		item.Part = day[0].part
		item.Parts = day[0].parts
	}
	return item
}

func dayType(day []touch) domain.DayType {
	allPractice := true
	for _, t := range day {
		if t.entry.Kind == domain.KindHeavy {
			return domain.DayHeavy
		}
		if t.entry.Kind != domain.KindPractice {
			allPractice = false
		}
	}
	if allPractice {
		return domain.DayPractice
	}
	return domain.DayStudy
}

func (t touch) label() string {
	var notes []string
	if t.parts > 1 {
		notes = append(notes, fmt.Sprintf("Part %d/%d", t.part, t.parts))
	}
	if t.round > 1 {
		notes = append(notes, fmt.Sprintf("Round %d", t.round))
	}
	if len(notes) == 0 {
		return t.entry.Topic
	}
	return fmt.Sprintf("%s (%s)", t.entry.Topic, strings.Join(notes, ", "))
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
