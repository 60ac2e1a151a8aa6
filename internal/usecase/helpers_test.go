package usecase

import (
	"sync"
	"testing"
	"time"

	"thn-proxy/internal/domain"
	"thn-proxy/internal/infrastructure/cache"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 12, 12, 8, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

var (
	listingPolicy = domain.CachePolicy{TTL: 10 * time.Second, MaxStale: 300 * time.Second}
	contentPolicy = domain.CachePolicy{TTL: 60 * time.Second, MaxStale: 300 * time.Second}
)

func newTestCache[T any](t *testing.T, policy domain.CachePolicy, clock *fakeClock) *cache.TTLCache[T] {
	t.Helper()
	c, err := cache.NewTTLCache[T](policy, 16, cache.WithClock(clock.Now))
	require.NoError(t, err)
	return c
}
