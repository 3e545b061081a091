package domain

import "cloud.google.com/go/civil"

// SyllabusEntry is one catalog topic with its effort weight.
type SyllabusEntry struct {
	Topic          string
	Category       string
	EstimatedUnits int
	Kind           EntryKind
}

// PlanItem is one scheduled day. Plans hold exactly one item per date.
type PlanItem struct {
	Date     civil.Date
	Title    string
	Type     DayType
	Category string

	// Topics lists the catalog topics consumed on this day; empty for
	// revision, mock and blackout days.
	Topics []string

	// Part and Parts are set when a single entry spans several study days.
	Part  int
	Parts int
}

// Key returns the storage key of the item's date.
func (p PlanItem) Key() string {
	return p.Date.String()
}

// IsSpecial reports whether the item is a fixed-label day that consumed no
// catalog entries.
func (p PlanItem) IsSpecial() bool {
	return len(p.Topics) == 0
}

// Clone returns a copy that shares no slices with p.
func (p PlanItem) Clone() PlanItem {
	if p.Topics != nil {
		p.Topics = append([]string(nil), p.Topics...)
	}
	return p
}
