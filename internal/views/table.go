package views

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
)

type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterCompleted FilterStatus = "completed"
	FilterOverdue   FilterStatus = "overdue"
	FilterPending   FilterStatus = "pending"
)

// ParseFilterStatus accepts the filter names case-insensitively. An empty
// string means all.
func ParseFilterStatus(s string) (FilterStatus, error) {
	switch f := FilterStatus(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCompleted, FilterOverdue, FilterPending:
		return f, nil
	}
	return "", fmt.Errorf("invalid status filter %q (expected all, completed, overdue or pending)", s)
}

// Filter selects table rows by status bucket and title substring.
type Filter struct {
	Status FilterStatus
	Query  string
}

// Match reports whether r passes both the status and the query filter.
func (f Filter) Match(r Row) bool {
	switch f.Status {
	case FilterCompleted:
		if r.Status != domain.StatusDone {
			return false
		}
	case FilterOverdue:
		if r.Status != domain.StatusLate {
			return false
		}
	case FilterPending:
		if r.Status != domain.StatusToday && r.Status != domain.StatusUpcoming {
			return false
		}
	}
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Item.Title), strings.ToLower(q))
}

// Table returns the rows matching f, preserving order.
func Table(rows []Row, f Filter) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
