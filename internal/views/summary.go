package views

import (
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
)

// CategoryProgress counts study days touching one category.
type CategoryProgress struct {
	Category string
	Total    int
	Done     int
}

// Summary aggregates a list of rows.
type Summary struct {
	Total    int
	Done     int
	Late     int
	Today    int
	Upcoming int

	// Percent is Done/Total*100, zero for an empty list.
	Percent float64

	// Categories are in first-seen order. Composite categories such as
	// "Paper I / Paper II" count toward each part.
	Categories []CategoryProgress

	Confidence map[domain.Confidence]int

	// Next is the first row that is due today or later and not yet done.
	Next *Row
}

func Summarize(rows []Row) Summary {
	s := Summary{Confidence: make(map[domain.Confidence]int)}
	catIndex := make(map[string]int)

	for i, r := range rows {
		s.Total++
		switch r.Status {
		case domain.StatusDone:
			s.Done++
			if r.Record != nil {
				s.Confidence[r.Record.Confidence]++
			}
		case domain.StatusLate:
			s.Late++
		case domain.StatusToday:
			s.Today++
		case domain.StatusUpcoming:
			s.Upcoming++
		}
		if s.Next == nil && (r.Status == domain.StatusToday || r.Status == domain.StatusUpcoming) {
			next := rows[i]
			s.Next = &next
		}

		for _, cat := range splitCategory(r.Item.Category) {
			idx, ok := catIndex[cat]
			if !ok {
				idx = len(s.Categories)
				catIndex[cat] = idx
				s.Categories = append(s.Categories, CategoryProgress{Category: cat})
			}
			s.Categories[idx].Total++
			if r.Status == domain.StatusDone {
				s.Categories[idx].Done++
			}
		}
	}
	if s.Total > 0 {
		s.Percent = float64(s.Done) / float64(s.Total) * 100
	}
	return s
}

func splitCategory(c string) []string {
	if strings.TrimSpace(c) == "" {
		return nil
	}
	parts := strings.Split(c, " / ")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
