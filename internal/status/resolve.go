// Package status derives the display state of a scheduled day from the plan
// item, its progress record and the current date. Nothing here is cached.
package status

import (
	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
)

// Resolve applies, in order: completed record => done, past date => late,
// current date => today, otherwise upcoming. Completion wins even for future
// dates since study material may be finished ahead of schedule.
func Resolve(item domain.PlanItem, rec *domain.ProgressRecord, today civil.Date) domain.Status {
	switch {
	case rec != nil && rec.Completed:
		return domain.StatusDone
	case item.Date.Before(today):
		return domain.StatusLate
	case item.Date == today:
		return domain.StatusToday
	default:
		return domain.StatusUpcoming
	}
}

// Lookup joins the item with its record in progress and resolves it.
func Lookup(progress domain.ProgressData, item domain.PlanItem, today civil.Date) domain.Status {
	return Resolve(item, progress.Lookup(item.Date), today)
}
