package cache

import (
	"fmt"
	"sync"
	"time"

	"thn-proxy/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxEntries bounds a cache when the caller passes a non-positive size.
const DefaultMaxEntries = 1024

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// TTLCache stores values with the time they were fetched and reports their age on read.
// It never evicts on age; the least recently used key goes once maxEntries is reached.
// Implements domain.Cache.
type TTLCache[T any] struct {
	mu      sync.Mutex
	entries *lru.Cache[string, entry[T]]
	policy  domain.CachePolicy
	now     func() time.Time
}

// Option configures a TTLCache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewTTLCache creates a cache for the given freshness policy.
func NewTTLCache[T any](policy domain.CachePolicy, maxEntries int, opts ...Option) (*TTLCache[T], error) {
	if policy.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", policy.TTL)
	}
	if policy.MaxStale < policy.TTL {
		return nil, fmt.Errorf("cache max stale %s is shorter than ttl %s", policy.MaxStale, policy.TTL)
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := lru.New[string, entry[T]](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}

	return &TTLCache[T]{
		entries: entries,
		policy:  policy,
		now:     o.now,
	}, nil
}

// Get returns the value for key and how long ago it was fetched.
func (c *TTLCache[T]) Get(key string) (T, time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key)
	if !ok {
		var zero T
		return zero, 0, false
	}

	age := c.now().Sub(e.fetchedAt)
	if age < 0 {
		age = 0
	}
	return e.value, age, true
}

// Put stores value under key, stamped with the current time.
// fetchedAt never moves backwards for a key.
func (c *TTLCache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fetchedAt := c.now()
	if prev, ok := c.entries.Peek(key); ok && prev.fetchedAt.After(fetchedAt) {
		fetchedAt = prev.fetchedAt
	}
	c.entries.Add(key, entry[T]{value: value, fetchedAt: fetchedAt})
}

// Policy returns the freshness bounds the cache was built with.
func (c *TTLCache[T]) Policy() domain.CachePolicy {
	return c.policy
}

// Len reports the number of stored keys.
func (c *TTLCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
