package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

type EventAction string

const (
	ActionComplete   EventAction = "complete"
	ActionUncomplete EventAction = "uncomplete"
)

// ProgressEvent is one entry of the append-only completion history.
type ProgressEvent struct {
	ID         string
	UserKey    string
	Date       civil.Date
	Action     EventAction
	Confidence Confidence
	Source     string
	At         time.Time
}
