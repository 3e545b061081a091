// Package catalog holds the ordered, immutable syllabus the planner walks.
package catalog

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
)

// MaxEntryUnits caps the effort weight of one entry.
const MaxEntryUnits = 1000

// Catalog is an ordered, read-only list of syllabus entries. Enumeration
// order is the order the entries were supplied in and never changes.
type Catalog struct {
	version string
	exam    string
	entries []domain.SyllabusEntry
}

// New validates entries and freezes them into a Catalog. Entries with an
// empty kind default to standard.
func New(version string, entries []domain.SyllabusEntry) (*Catalog, error) {
	frozen := make([]domain.SyllabusEntry, len(entries))
	for i, e := range entries {
		if e.Kind == "" {
			e.Kind = domain.KindStandard
		}
		e.Topic = strings.TrimSpace(e.Topic)
		e.Category = strings.TrimSpace(e.Category)
		frozen[i] = e
	}

	if errs := validateEntries(version, frozen); len(errs) > 0 {
		return nil, &domain.ConfigurationError{Source: "syllabus catalog", Problems: errs}
	}

	return &Catalog{version: version, entries: frozen}, nil
}

func validateEntries(version string, entries []domain.SyllabusEntry) []error {
	var errs []error
	if strings.TrimSpace(version) == "" {
		errs = append(errs, fmt.Errorf("version is required"))
	}
	if len(entries) == 0 {
		errs = append(errs, fmt.Errorf("catalog has no entries"))
	}

	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Topic == "" {
			errs = append(errs, fmt.Errorf("entries[%d].topic is required", i))
		}
		if e.Category == "" {
			errs = append(errs, fmt.Errorf("entries[%d].category is required", i))
		}
		switch {
		case e.EstimatedUnits <= 0:
			errs = append(errs, fmt.Errorf("entries[%d].units must be positive, got %d", i, e.EstimatedUnits))
		case e.EstimatedUnits > MaxEntryUnits:
			errs = append(errs, fmt.Errorf("entries[%d].units must be at most %d, got %d", i, MaxEntryUnits, e.EstimatedUnits))
		}
		if !domain.ValidEntryKinds[e.Kind] {
			errs = append(errs, fmt.Errorf("entries[%d].kind: invalid value %q", i, e.Kind))
		}
		if e.Topic == "" {
			continue
		}
		key := strings.ToLower(e.Category) + "\x00" + strings.ToLower(e.Topic)
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("entries[%d]: duplicate topic %q in %q (first at entries[%d])", i, e.Topic, e.Category, first))
			continue
		}
		seen[key] = i
	}
	return errs
}

// Version returns the catalog's configuration version.
func (c *Catalog) Version() string { return c.version }

// Exam returns the exam name, if the source declared one.
func (c *Catalog) Exam() string { return c.exam }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []domain.SyllabusEntry {
	out := make([]domain.SyllabusEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, e := range c.entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	return cats
}

// TotalUnits sums the estimated units of every entry.
func (c *Catalog) TotalUnits() int {
	total := 0
	for _, e := range c.entries {
		total += e.EstimatedUnits
	}
	return total
}
