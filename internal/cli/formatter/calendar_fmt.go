package formatter

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/views"
	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 6

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const calendarLegend = "✔ done  ! late  ● today  ○ upcoming  · no plan"

// FormatCalendar renders a month grid followed by a legend.
func FormatCalendar(cal views.CalendarMonth) string {
	return CalendarGrid(cal, civil.Date{}) + Dim(calendarLegend) + "\n"
}

// CalendarGrid renders the month title, the weekday header and one line per
// week. The cell matching selected is highlighted.
func CalendarGrid(cal views.CalendarMonth, selected civil.Date) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %d", cal.Month, cal.Year)))
	b.WriteString("\n")

	for i := 0; i < 7; i++ {
		wd := (int(cal.WeekStart) + i) % 7
		b.WriteString(StyleHeader.Render(pad(dayNames[wd], cellWidth)))
	}
	b.WriteString("\n")

	for _, week := range cal.Weeks {
		for _, cell := range week {
			b.WriteString(pad(CalendarCell(cell, cell.Date == selected), cellWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CalendarCell renders one grid cell such as " 5✔". Days in the month that
// the plan does not cover get a dot; adjacent-month days are dimmed.
func CalendarCell(c views.Cell, selected bool) string {
	num := fmt.Sprintf("%2d", c.Date.Day)
	var text string
	switch {
	case !c.InMonth:
		text = Dim(num + " ")
	case c.Item == nil:
		text = Dim(num + "·")
	default:
		style := StatusStyle(c.Status)
		if c.Today {
			style = style.Bold(true).Underline(true)
		}
		text = style.Render(num + StatusIcon(c.Status))
	}
	if selected {
		return lipgloss.NewStyle().Reverse(true).Render(text)
	}
	return text
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 1))
}
