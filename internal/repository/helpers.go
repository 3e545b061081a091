package repository

import (
	"context"
	"time"
)

// timeLayout is fixed width so stored stamps sort lexically and keep
// nanosecond precision.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

type sourceKey struct{}

// DefaultSource tags history events when the caller named no source.
const DefaultSource = "cli"

// WithSource tags history events written under ctx with source (for example
// "board" for the interactive board).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return DefaultSource
}
