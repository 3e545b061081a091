package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks an invalid catalog or planner policy.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnauthorized marks a ledger mutation attempted without a signed-in user.
	ErrUnauthorized = errors.New("not authorized: please sign in")

	// ErrStorage marks a failed round-trip to the progress store.
	ErrStorage = errors.New("progress storage failure")

	// ErrMalformedRecord marks a stored progress record that could not be decoded.
	ErrMalformedRecord = errors.New("malformed progress record")

	// ErrInvalidKey marks a storage key a store can never accept.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrDateOutsidePlan marks a mutation for a date the plan does not cover.
	ErrDateOutsidePlan = errors.New("date is outside the study plan")
)

// ConfigurationError collects every problem found while validating static
// configuration. It is fatal at startup.
type ConfigurationError struct {
	Source   string
	Problems []error
}

func (e *ConfigurationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	prefix := "invalid configuration"
	if e.Source != "" {
		prefix = fmt.Sprintf("invalid %s", e.Source)
	}
	return fmt.Sprintf("%s: %s", prefix, strings.Join(msgs, "; "))
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() []error { return e.Problems }

// AuthorizationError is returned when the auth gate refuses a mutation.
type AuthorizationError struct {
	Op string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrUnauthorized)
}

func (e *AuthorizationError) Is(target error) bool { return target == ErrUnauthorized }

// StorageError wraps a failed load or save. Transient failures (timeouts,
// unavailable stores) are retried by the ledger before surfacing.
type StorageError struct {
	Op        string
	Key       string
	Transient bool
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }

// MalformedRecordError reports a single stored record that was dropped
// during load.
type MalformedRecordError struct {
	Key string
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("progress record %q: %v", e.Key, e.Err)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

func (e *MalformedRecordError) Unwrap() error { return e.Err }
