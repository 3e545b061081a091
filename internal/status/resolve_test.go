package status

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func jan(day int) civil.Date {
	return civil.Date{Year: 2026, Month: 1, Day: day}
}

func item(d civil.Date) domain.PlanItem {
	return domain.PlanItem{Date: d, Title: "Topic", Type: domain.DayStudy}
}

func completed(c domain.Confidence) *domain.ProgressRecord {
	return &domain.ProgressRecord{Completed: true, Confidence: c, CompletedAt: time.Date(2026, 1, 3, 18, 0, 0, 0, time.UTC)}
}

func TestResolve(t *testing.T) {
	today := jan(5)

	tests := []struct {
		name string
		date civil.Date
		rec  *domain.ProgressRecord
		want domain.Status
	}{
		{"past completed is done not late", jan(3), completed(domain.ConfidenceLow), domain.StatusDone},
		{"past without record is late", jan(3), nil, domain.StatusLate},
		{"today without record", jan(5), nil, domain.StatusToday},
		{"today completed", jan(5), completed(domain.ConfidenceHigh), domain.StatusDone},
		{"future without record", jan(6), nil, domain.StatusUpcoming},
		{"future pre-completed", jan(20), completed(domain.ConfidenceMedium), domain.StatusDone},
		{"record not completed is ignored", jan(3), &domain.ProgressRecord{}, domain.StatusLate},
		{"previous year is late", civil.Date{Year: 2025, Month: 12, Day: 31}, nil, domain.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(item(tt.date), tt.rec, today))
		})
	}
}

func TestLookup_UnmarkTurnsPastDayLate(t *testing.T) {
	today := jan(5)
	progress := domain.ProgressData{jan(3): *completed(domain.ConfidenceLow)}

	assert.Equal(t, domain.StatusDone, Lookup(progress, item(jan(3)), today))

	delete(progress, jan(3))
	assert.Equal(t, domain.StatusLate, Lookup(progress, item(jan(3)), today))
}

func TestLookup_NilProgress(t *testing.T) {
	assert.Equal(t, domain.StatusToday, Lookup(nil, item(jan(5)), jan(5)))
	assert.Equal(t, domain.StatusUpcoming, Lookup(nil, item(jan(6)), jan(5)))
}
