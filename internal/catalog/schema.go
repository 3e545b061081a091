package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a catalog, in YAML or JSON.
type File struct {
	Version string      `json:"version" yaml:"version" validate:"required"`
	Exam    string      `json:"exam,omitempty" yaml:"exam,omitempty"`
	Entries []EntryFile `json:"entries" yaml:"entries" validate:"required,min=1,dive"`
}

// EntryFile is one syllabus topic in a catalog file.
type EntryFile struct {
	Topic    string `json:"topic" yaml:"topic" validate:"required"`
	Category string `json:"category" yaml:"category" validate:"required"`
	Units    int    `json:"units" yaml:"units" validate:"gt=0,lte=1000"`
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty" validate:"omitempty,oneof=standard heavy practice"`
}

// LoadFile reads a catalog from a .yaml, .yml or .json file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, fmt.Errorf("catalog file %q: unsupported extension (use .yaml, .yml or .json)", path)
	}

	cat, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog file %q: %w", path, err)
	}
	return cat, nil
}

// Parse decodes, validates and freezes a catalog document. format is
// "yaml" or "json".
func Parse(data []byte, format string) (*Catalog, error) {
	var f File
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, &domain.ConfigurationError{Source: "syllabus catalog", Problems: []error{fmt.Errorf("parsing JSON: %w", err)}}
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, &domain.ConfigurationError{Source: "syllabus catalog", Problems: []error{fmt.Errorf("parsing YAML: %w", err)}}
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	if errs := ValidateFile(&f); len(errs) > 0 {
		return nil, &domain.ConfigurationError{Source: "syllabus catalog", Problems: errs}
	}

	cat, err := New(f.Version, f.toEntries())
	if err != nil {
		return nil, err
	}
	cat.exam = f.Exam
	return cat, nil
}

func (f *File) toEntries() []domain.SyllabusEntry {
	entries := make([]domain.SyllabusEntry, 0, len(f.Entries))
	for _, e := range f.Entries {
		entries = append(entries, domain.SyllabusEntry{
			Topic:          e.Topic,
			Category:       e.Category,
			EstimatedUnits: e.Units,
			Kind:           domain.EntryKind(e.Kind),
		})
	}
	return entries
}
