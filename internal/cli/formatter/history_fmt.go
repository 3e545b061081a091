package formatter

import (
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
)

// FormatHistory renders progress events newest first.
func FormatHistory(events []*domain.ProgressEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("No progress recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		action := StyleGreen.Render("✔ complete")
		if e.Action == domain.ActionUncomplete {
			action = StyleYellow.Render("↺ undo")
		}
		rows = append(rows, []string{
			HumanTimestamp(e.At, now),
			e.Date.String(),
			action,
			ConfidenceBadge(e.Confidence),
			Dim(e.Source),
			TruncID(e.ID),
		})
	}
	return RenderTable([]string{"WHEN", "DATE", "ACTION", "CONF", "SOURCE", "ID"}, rows)
}
