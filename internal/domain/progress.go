package domain

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the wire format of every date key.
const DateLayout = "2006-01-02"

// ProgressRecord is the completion state of one scheduled day. A record only
// exists while the day is completed; unmarking deletes it.
type ProgressRecord struct {
	Completed   bool
	Confidence  Confidence
	CompletedAt time.Time
}

// ProgressData maps plan dates to their completion records.
type ProgressData map[civil.Date]ProgressRecord

// Clone returns an independent copy of d. A nil map clones to an empty one.
func (d ProgressData) Clone() ProgressData {
	out := make(ProgressData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Lookup returns the record for date, or nil if the day is not completed.
func (d ProgressData) Lookup(date civil.Date) *ProgressRecord {
	rec, ok := d[date]
	if !ok {
		return nil
	}
	return &rec
}

// ParseDateKey parses a YYYY-MM-DD key strictly.
func ParseDateKey(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	if d.String() != strings.TrimSpace(s) {
		return civil.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// ParseConfidence maps user input to a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid confidence %q (expected low, medium or high)", s)
	}
	return c, nil
}
