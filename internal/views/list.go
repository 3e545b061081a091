// Package views projects a plan and its progress into read-only shapes for
// rendering: a month grid, a flat list, a filtered table and a summary.
// Nothing here mutates progress.
package views

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/status"
)

// Row is one plan item joined with its progress record and derived status.
type Row struct {
	Item   domain.PlanItem
	Status domain.Status
	Record *domain.ProgressRecord
}

// List returns one row per plan item, in plan order.
func List(plan []domain.PlanItem, progress domain.ProgressData, today civil.Date) []Row {
	rows := make([]Row, 0, len(plan))
	for _, item := range plan {
		rec := progress.Lookup(item.Date)
		rows = append(rows, Row{
			Item:   item.Clone(),
			Status: status.Resolve(item, rec, today),
			Record: rec,
		})
	}
	return rows
}

// Group is a labelled run of consecutive rows.
type Group struct {
	Label string
	Start civil.Date
	End   civil.Date
	Rows  []Row
}

// GroupByWeek splits rows into calendar weeks beginning on weekStart. Rows
// must be in ascending date order.
func GroupByWeek(rows []Row, weekStart time.Weekday) []Group {
	var groups []Group
	for _, r := range rows {
		start := StartOfWeek(r.Item.Date, weekStart)
		if n := len(groups); n > 0 && groups[n-1].Start == start {
			groups[n-1].Rows = append(groups[n-1].Rows, r)
			continue
		}
		groups = append(groups, Group{
			Label: fmt.Sprintf("Week %d", len(groups)+1),
			Start: start,
			End:   start.AddDays(6),
			Rows:  []Row{r},
		})
	}
	return groups
}

// GroupByMonth splits rows into calendar months.
func GroupByMonth(rows []Row) []Group {
	var groups []Group
	for _, r := range rows {
		d := r.Item.Date
		start := civil.Date{Year: d.Year, Month: d.Month, Day: 1}
		if n := len(groups); n > 0 && groups[n-1].Start == start {
			groups[n-1].Rows = append(groups[n-1].Rows, r)
			continue
		}
		groups = append(groups, Group{
			Label: fmt.Sprintf("%s %d", d.Month, d.Year),
			Start: start,
			End:   lastOfMonth(d.Year, d.Month),
			Rows:  []Row{r},
		})
	}
	return groups
}

// StartOfWeek returns the latest date on or before d that falls on weekStart.
func StartOfWeek(d civil.Date, weekStart time.Weekday) civil.Date {
	offset := (int(Weekday(d)) - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// Weekday returns the day of the week d falls on.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

func lastOfMonth(year int, month time.Month) civil.Date {
	return civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
}
