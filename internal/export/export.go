// Package export writes plan rows to CSV or JSON files.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/examplan/internal/views"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid export format %q (expected csv or json)", s)
}

var header = []string{"date", "weekday", "category", "type", "title", "status", "confidence", "completed_at"}

// ToFile writes rows to path in format, replacing any existing file.
func ToFile(path string, format Format, rows []views.Row, exportedAt time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s file: %w", format, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s file: %w", format, cerr)
		}
	}()
	return Write(f, format, rows, exportedAt)
}

// Write encodes rows to w.
func Write(w io.Writer, format Format, rows []views.Row, exportedAt time.Time) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows, exportedAt)
	}
	return fmt.Errorf("invalid export format %q", format)
}

func fields(r views.Row) []string {
	confidence, completedAt := "", ""
	if r.Record != nil {
		confidence = string(r.Record.Confidence)
		completedAt = r.Record.CompletedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		r.Item.Date.String(),
		views.Weekday(r.Item.Date).String(),
		r.Item.Category,
		string(r.Item.Type),
		r.Item.Title,
		string(r.Status),
		confidence,
		completedAt,
	}
}
