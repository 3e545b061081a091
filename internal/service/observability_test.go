package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "complete-day", Success: true, Duration: 3 * time.Millisecond,
		Fields: map[string]any{"date": "2026-01-03"}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "load-progress", Success: true, Err: errors.New("dropped record")})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "complete-day", Err: errors.New("please sign in")})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=service_use_case use_case=complete-day duration_ms=3 success=true date=2026-01-03")
	assert.Contains(t, out, `level=WARN msg=service_use_case use_case=load-progress`)
	assert.Contains(t, out, `error="dropped record"`)
	assert.Contains(t, out, `level=ERROR msg=service_use_case use_case=complete-day`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}).(*recordingObserver))
}
