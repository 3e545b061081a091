package formatter

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/views"
)

const titleWidth = 48

// FormatRows renders plan rows as a table.
func FormatRows(rows []views.Row, today civil.Date) string {
	if len(rows) == 0 {
		return Dim("No days match.") + "\n"
	}
	headers := []string{"DATE", "DAY", "TYPE", "TITLE", "CATEGORY", "STATUS", "CONF"}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, rowCells(r, today))
	}
	return RenderTable(headers, data)
}

func rowCells(r views.Row, today civil.Date) []string {
	date := r.Item.Date.String()
	if r.Item.Date == today {
		date = Bold(date)
	}
	conf := ConfidenceBadge("")
	if r.Record != nil {
		conf = ConfidenceBadge(r.Record.Confidence)
	}
	category := r.Item.Category
	if category == "" {
		category = Dim("--")
	}
	return []string{
		date,
		Dim(views.Weekday(r.Item.Date).String()[:3]),
		TypeBadge(r.Item.Type),
		Truncate(r.Item.Title, titleWidth),
		category,
		StatusBadge(r.Status),
		conf,
	}
}

// FormatGroups renders rows grouped by week or month, each group headed by
// its label, date span and completion count.
func FormatGroups(groups []views.Group, today civil.Date) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		done := 0
		for _, r := range g.Rows {
			if r.Record != nil {
				done++
			}
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", StyleHeader.Render(g.Label),
			Dim(fmt.Sprintf("%s → %s", g.Start, g.End)),
			Dim(fmt.Sprintf("%d/%d done", done, len(g.Rows))))
		for _, r := range g.Rows {
			marker := StatusStyle(r.Status).Render(StatusIcon(r.Status))
			date := r.Item.Date.String()
			if r.Item.Date == today {
				date = Bold(date)
			}
			fmt.Fprintf(&b, "  %s %s  %-8s %s\n", marker, date,
				views.Weekday(r.Item.Date).String()[:3],
				TypeStyle(r.Item.Type).Render(Truncate(r.Item.Title, titleWidth+12)))
		}
	}
	return b.String()
}

// FormatDay renders the detail box for a single scheduled day.
func FormatDay(r views.Row, today civil.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(HumanDate(r.Item.Date)), Dim(RelativeDay(r.Item.Date, today)))
	fmt.Fprintf(&b, "%s\n\n", StyleFg.Render(r.Item.Title))
	fmt.Fprintf(&b, "Type:       %s\n", TypeBadge(r.Item.Type))
	if r.Item.Category != "" {
		fmt.Fprintf(&b, "Category:   %s\n", r.Item.Category)
	}
	if r.Item.Parts > 1 {
		fmt.Fprintf(&b, "Part:       %d of %d\n", r.Item.Part, r.Item.Parts)
	}
	if len(r.Item.Topics) > 1 {
		b.WriteString("Topics:\n")
		for _, t := range r.Item.Topics {
			fmt.Fprintf(&b, "  • %s\n", t)
		}
	}
	fmt.Fprintf(&b, "Status:     %s", StatusBadge(r.Status))
	if r.Record != nil {
		fmt.Fprintf(&b, "\nConfidence: %s", ConfidenceBadge(r.Record.Confidence))
		fmt.Fprintf(&b, "\nCompleted:  %s", Dim(r.Record.CompletedAt.Local().Format("Jan 2 2006 15:04")))
	}
	return RenderBox("Study day", b.String())
}
