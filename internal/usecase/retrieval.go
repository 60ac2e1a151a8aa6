package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"thn-proxy/internal/domain"
	"thn-proxy/utils/metrics"

	"golang.org/x/sync/singleflight"
)

// retrieval runs the cache / refresh / stale-fallback decision for one cache.
// Concurrent loads of the same key share a single origin fetch.
type retrieval[T any] struct {
	name    string
	cache   domain.Cache[T]
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func newRetrieval[T any](name string, cache domain.Cache[T], m *metrics.Metrics, l *slog.Logger) *retrieval[T] {
	if l == nil {
		l = slog.Default()
	}
	return &retrieval[T]{name: name, cache: cache, metrics: m, logger: l}
}

// get serves a fresh entry unless refresh is set, otherwise loads. A failed load falls back
// to a stale-but-usable entry; an expired entry is never served.
func (r *retrieval[T]) get(ctx context.Context, key string, refresh bool, load func(context.Context) (T, error)) domain.Outcome[T] {
	cached, age, ok := r.cache.Get(key)
	band := r.cache.Policy().Classify(age, ok)
	r.metrics.RecordCacheLookup(r.name, band.String())

	if !refresh && band == domain.Fresh {
		return r.record(domain.FreshOutcome(cached, true, age))
	}

	value, err := r.load(ctx, key, load)
	if err == nil {
		return r.record(domain.FreshOutcome(value, false, 0))
	}

	// Re-read: a concurrent load may have stored a newer entry meanwhile.
	// Any usable entry served after a failed fetch is reported as stale.
	cached, age, ok = r.cache.Get(key)
	switch r.cache.Policy().Classify(age, ok) {
	case domain.Fresh, domain.StaleUsable:
		r.logger.WarnContext(ctx, "serving cached entry after failed fetch",
			"cache", r.name,
			"key", key,
			"age_seconds", int(age.Seconds()),
			"error", err)
		return r.record(domain.StaleOutcome(cached, age, err))
	default:
		r.logger.ErrorContext(ctx, "retrieval failed with no usable entry",
			"cache", r.name,
			"key", key,
			"error", err)
		return r.record(domain.FailedOutcome[T](err))
	}
}

// load runs fn once per key at a time and stores a successful result.
// The shared fetch is detached from the caller's cancellation; the fetcher's own timeout
// bounds it. A cancelled caller stops waiting without touching the cache.
func (r *retrieval[T]) load(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	ch := r.group.DoChan(key, func() (any, error) {
		value, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.cache.Put(key, value)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", domain.ErrFetchFailed, ctx.Err())
	case res := <-ch:
		if res.Shared {
			r.metrics.RecordSharedFetch(r.name)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (r *retrieval[T]) record(o domain.Outcome[T]) domain.Outcome[T] {
	r.metrics.RecordOutcome(r.name, o.Kind.String())
	return o
}
