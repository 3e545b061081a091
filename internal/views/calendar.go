package views

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/status"
)

// Cell is one day of a month grid. Item is nil when the plan has nothing on
// that date; Status is then empty.
type Cell struct {
	Date    civil.Date
	InMonth bool
	Today   bool
	Item    *domain.PlanItem
	Status  domain.Status
	Record  *domain.ProgressRecord
}

// Week is seven consecutive cells starting on the grid's week start.
type Week [7]Cell

// CalendarMonth is a grid of complete weeks covering one month. Leading and
// trailing days belong to the adjacent months.
type CalendarMonth struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Weeks     []Week
}

// Calendar builds the grid for year/month.
func Calendar(plan []domain.PlanItem, progress domain.ProgressData, year int, month time.Month, today civil.Date, weekStart time.Weekday) CalendarMonth {
	byDate := make(map[civil.Date]int, len(plan))
	for i, item := range plan {
		byDate[item.Date] = i
	}

	first := civil.Date{Year: year, Month: month, Day: 1}
	last := lastOfMonth(year, month)
	gridStart := StartOfWeek(first, weekStart)
	gridEnd := StartOfWeek(last, weekStart).AddDays(6)

	cal := CalendarMonth{Year: year, Month: month, WeekStart: weekStart}
	for ws := gridStart; !ws.After(gridEnd); ws = ws.AddDays(7) {
		var week Week
		for i := range week {
			d := ws.AddDays(i)
			cell := Cell{
				Date:    d,
				InMonth: d.Month == month && d.Year == year,
				Today:   d == today,
			}
			if idx, ok := byDate[d]; ok {
				item := plan[idx].Clone()
				cell.Item = &item
				cell.Record = progress.Lookup(d)
				cell.Status = status.Resolve(item, cell.Record, today)
			}
			week[i] = cell
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Months lists the months the plan touches, in ascending order.
func Months(plan []domain.PlanItem) []YearMonth {
	var out []YearMonth
	for _, item := range plan {
		ym := YearMonth{Year: item.Date.Year, Month: item.Date.Month}
		if n := len(out); n > 0 && out[n-1] == ym {
			continue
		}
		out = append(out, ym)
	}
	return out
}
