package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/examplan/internal/storage"
)

// ErrInjected is the default error returned by FailingStore.
var ErrInjected = errors.New("injected storage failure")

// FailingStore wraps an in-memory store and injects failures on demand.
//
// Put calls are counted starting at 1. The first FailPuts calls fail with Err
// (or ErrInjected); a negative FailPuts fails every call. With BlockPuts set a
// failing Put waits for its context to expire instead of returning at once.
type FailingStore struct {
	*storage.Memory
	FailPuts  int32
	FailGets  bool
	BlockPuts bool
	Err       error

	puts atomic.Int32
}

func NewFailingStore() *FailingStore {
	return &FailingStore{Memory: storage.NewMemory()}
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.FailGets {
		return nil, false, s.err()
	}
	return s.Memory.Get(ctx, key)
}

func (s *FailingStore) Put(ctx context.Context, key string, blob []byte) error {
	n := s.puts.Add(1)
	if s.FailPuts < 0 || n <= s.FailPuts {
		if s.BlockPuts {
			<-ctx.Done()
			return ctx.Err()
		}
		return s.err()
	}
	return s.Memory.Put(ctx, key, blob)
}

// Puts returns how many Put calls were made, failed ones included.
func (s *FailingStore) Puts() int { return int(s.puts.Load()) }

func (s *FailingStore) err() error {
	if s.Err != nil {
		return s.Err
	}
	return ErrInjected
}
