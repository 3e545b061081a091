package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/catalog"
)

// FormatCatalog lists catalog entries in scheduling order.
func FormatCatalog(cat *catalog.Catalog) string {
	var b strings.Builder
	title := "Catalog " + cat.Version()
	if cat.Exam() != "" {
		title = cat.Exam() + " " + cat.Version()
	}
	b.WriteString(Header(title))
	b.WriteString("\n")

	entries := cat.Entries()
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			e.Topic,
			e.Category,
			string(e.Kind),
			fmt.Sprintf("%d", e.EstimatedUnits),
		})
	}
	b.WriteString(RenderTable([]string{"#", "TOPIC", "CATEGORY", "KIND", "UNITS"}, rows))
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d topics, %d units, %d categories",
		cat.Len(), cat.TotalUnits(), len(cat.Categories()))))
	return b.String()
}
