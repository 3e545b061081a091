package domain

type EntryKind string

const (
	KindStandard EntryKind = "standard"
	KindHeavy    EntryKind = "heavy"
	KindPractice EntryKind = "practice"
)

// ValidEntryKinds is the canonical set of accepted catalog entry kinds.
var ValidEntryKinds = map[EntryKind]bool{
	KindStandard: true, KindHeavy: true, KindPractice: true,
}

type DayType string

const (
	DayStudy    DayType = "study"
	DayRevision DayType = "revision"
	DayMock     DayType = "mock"
	DayPractice DayType = "practice"
	DayHeavy    DayType = "heavy"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ValidConfidences lists the accepted confidence levels in ascending order.
var ValidConfidences = []Confidence{ConfidenceLow, ConfidenceMedium, ConfidenceHigh}

// Valid reports whether c is one of the known confidence levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// Status is the derived display state of a scheduled day. It is always
// recomputed and never persisted.
type Status string

const (
	StatusDone     Status = "done"
	StatusLate     Status = "late"
	StatusToday    Status = "today"
	StatusUpcoming Status = "upcoming"
)
