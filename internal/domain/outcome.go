package domain

import "time"

// OutcomeKind tags how a retrieval was satisfied.
type OutcomeKind int

const (
	OutcomeFresh OutcomeKind = iota
	OutcomeStale
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFresh:
		return "fresh"
	case OutcomeStale:
		return "stale"
	default:
		return "failed"
	}
}

// Outcome is the result of one fetch-or-fallback decision.
type Outcome[T any] struct {
	Kind      OutcomeKind
	Value     T
	FromCache bool
	Age       time.Duration
	Err       error
}

// FreshOutcome wraps a value that is within its TTL, either cached or just fetched.
func FreshOutcome[T any](v T, fromCache bool, age time.Duration) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFresh, Value: v, FromCache: fromCache, Age: age}
}

// StaleOutcome wraps a cached value served because a refetch failed.
func StaleOutcome[T any](v T, age time.Duration, cause error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeStale, Value: v, FromCache: true, Age: age, Err: cause}
}

// FailedOutcome carries the error that could not be masked.
func FailedOutcome[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFailed, Err: err}
}

// CacheStatus is the value reported in the X-Cache response header.
func (o Outcome[T]) CacheStatus() string {
	switch {
	case o.Kind == OutcomeStale:
		return "stale"
	case o.FromCache:
		return "hit"
	default:
		return "miss"
	}
}

// Result returns the value, or the error for a failed outcome.
func (o Outcome[T]) Result() (T, error) {
	if o.Kind == OutcomeFailed {
		var zero T
		return zero, o.Err
	}
	return o.Value, nil
}

// MapOutcome converts the value of o, keeping its tag, age and error.
func MapOutcome[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	out := Outcome[U]{Kind: o.Kind, FromCache: o.FromCache, Age: o.Age, Err: o.Err}
	if o.Kind != OutcomeFailed {
		out.Value = f(o.Value)
	}
	return out
}
