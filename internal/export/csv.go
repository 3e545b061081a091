package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/examplan/internal/views"
)

// WriteCSV writes a header line and one line per row.
func WriteCSV(w io.Writer, rows []views.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(fields(r)); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Item.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
