package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the provider reports a resource does not exist.
var ErrNotFound = errors.New("not found")

// TransientFetchError is a retryable provider failure (network, rate limit, 5xx).
type TransientFetchError struct {
	Op  string
	ID  string
	Err error
}

func (e *TransientFetchError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: transient: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: transient: %v", e.Op, e.ID, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// MissingDataError marks a record that lacks a field required to process it.
type MissingDataError struct {
	GameID string
	Field  string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("game %s: missing %s", e.GameID, e.Field)
}

// LookupError means a static table has no entry for a key (champion id, side code, ...).
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s mapping for %q", e.Kind, e.Key)
}

// ConsistencyError means a store or join invariant was violated. The run must abort.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	return "consistency: " + e.Reason
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	var t *TransientFetchError
	return errors.As(err, &t)
}
