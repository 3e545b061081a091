package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
)

// ProgressBlob is the stored JSON document for one ledger key.
type ProgressBlob struct {
	Key       string
	Blob      []byte
	Revision  int
	UpdatedAt time.Time
}

type ProgressBlobRepo interface {
	Get(ctx context.Context, key string) (*ProgressBlob, error)
	// Upsert stores blob and returns the new revision, starting at 1.
	Upsert(ctx context.Context, key string, blob []byte, at time.Time) (int, error)
}

type ProgressEventRepo interface {
	Append(ctx context.Context, e *domain.ProgressEvent) error
	// ListByUser returns events newest first. limit <= 0 means all.
	ListByUser(ctx context.Context, userKey string, limit int) ([]*domain.ProgressEvent, error)
}
