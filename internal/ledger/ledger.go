// Package ledger holds a user's progress records in memory and writes every
// change through to an injected key-value store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/clock"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultTimeout    = 3 * time.Second
	DefaultAttempts   = 3
	DefaultRetryDelay = 200 * time.Millisecond
)

// Store is the persistence collaborator. Get reports found=false for a key
// that was never written.
type Store interface {
	Get(ctx context.Context, key string) (blob []byte, found bool, err error)
	Put(ctx context.Context, key string, blob []byte) error
}

// Gate decides whether the current session may mutate progress.
type Gate interface {
	Authorized(ctx context.Context) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(ctx context.Context) bool

func (f GateFunc) Authorized(ctx context.Context) bool { return f(ctx) }

// AllowAll authorizes every mutation.
var AllowAll Gate = GateFunc(func(context.Context) bool { return true })

// LoadResult is the outcome of Load. Warnings holds every non-fatal problem
// (storage failure, dropped records); Data is always usable.
type LoadResult struct {
	Data     domain.ProgressData
	Warnings []error
}

type Option func(*Ledger)

func WithClock(c clock.Clock) Option { return func(l *Ledger) { l.clock = c } }

func WithGate(g Gate) Option { return func(l *Ledger) { l.gate = g } }

func WithLogger(logger *slog.Logger) Option { return func(l *Ledger) { l.logger = logger } }

// WithTimeout bounds each store round-trip. Zero or negative disables it.
func WithTimeout(d time.Duration) Option { return func(l *Ledger) { l.timeout = d } }

// WithRetry sets how many times a save is attempted and the pause between
// attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(l *Ledger) {
		if attempts > 0 {
			l.attempts = attempts
		}
		if delay >= 0 {
			l.delay = delay
		}
	}
}

// Ledger is safe for concurrent use. Mutations hold the lock until the
// write-through finishes.
type Ledger struct {
	store Store
	key   string

	clock    clock.Clock
	gate     Gate
	logger   *slog.Logger
	timeout  time.Duration
	attempts int
	delay    time.Duration

	mu   sync.Mutex
	data domain.ProgressData
}

// New returns a ledger bound to one storage key. The ledger starts empty;
// call Load to read the stored state.
func New(store Store, key string, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		key:      key,
		clock:    clock.System{},
		gate:     AllowAll,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:  DefaultTimeout,
		attempts: DefaultAttempts,
		delay:    DefaultRetryDelay,
		data:     make(domain.ProgressData),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key returns the storage key the ledger reads and writes.
func (l *Ledger) Key() string { return l.key }

// Load reads the stored blob and replaces the in-memory state. It never
// fails: a missing blob yields empty data, a storage or decode failure yields
// empty data plus a warning, and malformed records are dropped individually.
func (l *Ledger) Load(ctx context.Context) LoadResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	blob, found, err := l.get(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "progress load failed", "key", l.key, "error", err)
		l.data = make(domain.ProgressData)
		return LoadResult{Data: l.data.Clone(), Warnings: []error{err}}
	}
	if !found {
		l.data = make(domain.ProgressData)
		return LoadResult{Data: l.data.Clone()}
	}

	data, warnings, err := Decode(blob)
	if err != nil {
		serr := &domain.StorageError{Op: "load", Key: l.key, Err: err}
		l.logger.WarnContext(ctx, "progress blob unreadable", "key", l.key, "error", err)
		l.data = make(domain.ProgressData)
		return LoadResult{Data: l.data.Clone(), Warnings: []error{serr}}
	}
	for _, w := range warnings {
		l.logger.WarnContext(ctx, "dropped progress record", "key", l.key, "error", w)
	}
	l.data = data
	return LoadResult{Data: l.data.Clone(), Warnings: warnings}
}

// Data returns a copy of the current in-memory state.
func (l *Ledger) Data() domain.ProgressData {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data.Clone()
}

// MarkComplete records date as completed with confidence, stamped with the
// current time, and writes the whole state through.
func (l *Ledger) MarkComplete(ctx context.Context, date civil.Date, confidence domain.Confidence) (domain.ProgressData, error) {
	if !confidence.Valid() {
		return nil, fmt.Errorf("mark complete %s: invalid confidence %q", date, confidence)
	}
	return l.mutate(ctx, "mark complete", func(data domain.ProgressData) bool {
		data[date] = domain.ProgressRecord{
			Completed:   true,
			Confidence:  confidence,
			CompletedAt: l.clock.Now().UTC(),
		}
		return true
	})
}

// MarkIncomplete deletes the record for date. Unmarking a date that has no
// record changes nothing and performs no write.
func (l *Ledger) MarkIncomplete(ctx context.Context, date civil.Date) (domain.ProgressData, error) {
	return l.mutate(ctx, "mark incomplete", func(data domain.ProgressData) bool {
		if _, ok := data[date]; !ok {
			return false
		}
		delete(data, date)
		return true
	})
}

// Save replaces the in-memory state with data and writes it through.
// Incomplete records are dropped and timestamps are kept in UTC, matching
// what a later Load returns.
func (l *Ledger) Save(ctx context.Context, data domain.ProgressData) error {
	for d, v := range data {
		if v.Completed && !v.Confidence.Valid() {
			return fmt.Errorf("save %s: invalid confidence %q", d, v.Confidence)
		}
	}
	_, err := l.mutate(ctx, "save", func(current domain.ProgressData) bool {
		for k := range current {
			delete(current, k)
		}
		for k, v := range data {
			if v.Completed {
				v.CompletedAt = v.CompletedAt.UTC()
				current[k] = v
			}
		}
		return true
	})
	return err
}

// mutate applies change to a working copy and commits it only after the
// store accepted the new blob.
func (l *Ledger) mutate(ctx context.Context, op string, change func(domain.ProgressData) bool) (domain.ProgressData, error) {
	if !l.gate.Authorized(ctx) {
		return nil, &domain.AuthorizationError{Op: op}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.data.Clone()
	if !change(next) {
		return next, nil
	}

	blob, err := Encode(next)
	if err != nil {
		return nil, &domain.StorageError{Op: op, Key: l.key, Err: err}
	}
	if err := l.put(ctx, op, blob); err != nil {
		l.logger.WarnContext(ctx, "progress save failed", "key", l.key, "op", op, "error", err)
		return l.data.Clone(), err
	}
	l.data = next
	return next.Clone(), nil
}

func (l *Ledger) get(ctx context.Context) ([]byte, bool, error) {
	actx, cancel := l.attemptContext(ctx)
	defer cancel()

	blob, found, err := l.store.Get(actx, l.key)
	if err != nil {
		return nil, false, l.storageError("load", err)
	}
	return blob, found, nil
}

func (l *Ledger) put(ctx context.Context, op string, blob []byte) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		actx, cancel := l.attemptContext(ctx)
		defer cancel()
		if err := l.store.Put(actx, l.key, blob); err != nil {
			if ctx.Err() != nil || errors.Is(err, domain.ErrInvalidKey) {
				return struct{}{}, backoff.Permanent(err)
			}
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(l.delay)),
		backoff.WithMaxTries(uint(l.attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.logger.DebugContext(ctx, "retrying progress save", "key", l.key, "attempt", attempt, "next", next, "error", err)
		}),
	)
	if err != nil {
		return l.storageError(op, err)
	}
	return nil
}

func (l *Ledger) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

func (l *Ledger) storageError(op string, err error) error {
	var serr *domain.StorageError
	if errors.As(err, &serr) {
		return err
	}
	return &domain.StorageError{
		Op:        op,
		Key:       l.key,
		Transient: errors.Is(err, context.DeadlineExceeded),
		Err:       err,
	}
}
