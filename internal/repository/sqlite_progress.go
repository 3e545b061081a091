package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/alexanderramin/examplan/internal/clock"
	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/ledger"
)

// SQLiteProgressRepo is the SQLite-backed ledger store. Each Put replaces the
// blob and appends one history event per changed date in the same
// transaction.
type SQLiteProgressRepo struct {
	uow   db.UnitOfWork
	clock clock.Clock
}

var _ ledger.Store = (*SQLiteProgressRepo)(nil)

// NewSQLiteProgressRepo creates a store over uow. A nil clock means the
// system clock.
func NewSQLiteProgressRepo(uow db.UnitOfWork, c clock.Clock) *SQLiteProgressRepo {
	if c == nil {
		c = clock.System{}
	}
	return &SQLiteProgressRepo{uow: uow, clock: c}
}

func (r *SQLiteProgressRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob []byte
	var found bool
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := NewSQLiteBlobRepo(tx).Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		blob, found = b.Blob, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return blob, found, nil
}

func (r *SQLiteProgressRepo) Put(ctx context.Context, key string, blob []byte) error {
	now := r.clock.Now().UTC()
	source := sourceFrom(ctx)

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		blobs := NewSQLiteBlobRepo(tx)

		var before domain.ProgressData
		prev, err := blobs.Get(ctx, key)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return err
		default:
			// History is best effort over whatever the previous blob held;
			// unreadable records simply count as absent.
			before, _, _ = ledger.Decode(prev.Blob)
		}
		after, _, _ := ledger.Decode(blob)

		if _, err := blobs.Upsert(ctx, key, blob, now); err != nil {
			return err
		}

		events := NewSQLiteEventRepo(tx)
		for _, e := range diffEvents(key, source, before, after, now) {
			if err := events.Append(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// diffEvents returns one event per date whose record appeared, changed or
// disappeared between before and after, in date order.
func diffEvents(key, source string, before, after domain.ProgressData, now time.Time) []*domain.ProgressEvent {
	var events []*domain.ProgressEvent
	for d, rec := range after {
		if old, ok := before[d]; ok && old == rec {
			continue
		}
		events = append(events, &domain.ProgressEvent{
			UserKey:    key,
			Date:       d,
			Action:     domain.ActionComplete,
			Confidence: rec.Confidence,
			Source:     source,
			At:         rec.CompletedAt,
		})
	}
	for d := range before {
		if _, ok := after[d]; ok {
			continue
		}
		events = append(events, &domain.ProgressEvent{
			UserKey: key,
			Date:    d,
			Action:  domain.ActionUncomplete,
			Source:  source,
			At:      now,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
