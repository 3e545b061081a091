package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/examplan/internal/views"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Days       []jsonEntry `json:"days"`
}

type jsonEntry struct {
	Date        string   `json:"date"`
	Weekday     string   `json:"weekday"`
	Category    string   `json:"category,omitempty"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Topics      []string `json:"topics,omitempty"`
	Status      string   `json:"status"`
	Confidence  string   `json:"confidence,omitempty"`
	CompletedAt string   `json:"completed_at,omitempty"`
}

// WriteJSON writes an indented document with one entry per row.
func WriteJSON(w io.Writer, rows []views.Row, exportedAt time.Time) error {
	doc := jsonExport{
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Count:      len(rows),
		Days:       make([]jsonEntry, 0, len(rows)),
	}
	for _, r := range rows {
		f := fields(r)
		doc.Days = append(doc.Days, jsonEntry{
			Date:        f[0],
			Weekday:     f[1],
			Category:    f[2],
			Type:        f[3],
			Title:       f[4],
			Topics:      r.Item.Topics,
			Status:      f[5],
			Confidence:  f[6],
			CompletedAt: f[7],
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
