package domain

import "time"

// Cache is a keyed store that reports the age of what it returns.
// Freshness is decided by the caller; see Freshness.
type Cache[T any] interface {
	Get(key string) (value T, age time.Duration, ok bool)
	Put(key string, value T)
	Policy() CachePolicy
}

// Freshness is the band an entry's age falls into.
type Freshness int

const (
	Absent Freshness = iota
	Fresh
	StaleUsable
	Expired
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case StaleUsable:
		return "stale"
	case Expired:
		return "expired"
	default:
		return "absent"
	}
}

// CachePolicy holds the two age bounds of a cache.
type CachePolicy struct {
	TTL      time.Duration
	MaxStale time.Duration
}

// Classify places an entry of the given age into its band.
func (p CachePolicy) Classify(age time.Duration, present bool) Freshness {
	switch {
	case !present:
		return Absent
	case age < p.TTL:
		return Fresh
	case age < p.MaxStale:
		return StaleUsable
	default:
		return Expired
	}
}
