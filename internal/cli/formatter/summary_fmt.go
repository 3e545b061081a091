package formatter

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/views"
)

// FormatSummary renders overall progress, the per-category breakdown and
// the next pending day.
func FormatSummary(s views.Summary, today civil.Date, unscheduled int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", RenderProgress(s.Percent/100, 30))
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d   %s %d   %s\n",
		StatusBadge(domain.StatusDone), s.Done,
		StatusBadge(domain.StatusLate), s.Late,
		StatusBadge(domain.StatusToday), s.Today,
		StatusBadge(domain.StatusUpcoming), s.Upcoming,
		Dim(fmt.Sprintf("of %d days", s.Total)))

	if len(s.Categories) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(s.Categories))
		for _, c := range s.Categories {
			rows = append(rows, []string{c.Category, RenderCount(c.Done, c.Total, 16)})
		}
		b.WriteString(RenderTable([]string{"CATEGORY", "PROGRESS"}, rows))
	}

	var conf []string
	for _, c := range domain.ValidConfidences {
		if n := s.Confidence[c]; n > 0 {
			conf = append(conf, fmt.Sprintf("%s %d", ConfidenceBadge(c), n))
		}
	}
	if len(conf) > 0 {
		fmt.Fprintf(&b, "\nConfidence: %s\n", strings.Join(conf, "  "))
	}

	if s.Next != nil {
		fmt.Fprintf(&b, "\nNext: %s %s  %s\n", Bold(s.Next.Item.Date.String()),
			Dim("("+RelativeDay(s.Next.Item.Date, today)+")"), s.Next.Item.Title)
	} else if s.Total > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleGreen.Render("Nothing left to study."))
	}
	if unscheduled > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleYellow.Render(fmt.Sprintf("%d catalog topics do not fit in the plan window.", unscheduled)))
	}
	return RenderBox("Progress", strings.TrimRight(b.String(), "\n"))
}
