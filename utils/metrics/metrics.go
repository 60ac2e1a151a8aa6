// Package metrics provides Prometheus metrics for thn-proxy.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "thnproxy"

// Metrics groups the collectors of one process. A nil *Metrics records nothing.
type Metrics struct {
	// OriginFetchTotal counts outbound requests to the origin by result.
	OriginFetchTotal *prometheus.CounterVec
	// OriginFetchDuration measures outbound request latency.
	OriginFetchDuration *prometheus.HistogramVec
	// CacheLookupsTotal counts cache reads by cache and freshness band.
	CacheLookupsTotal *prometheus.CounterVec
	// RetrievalOutcomesTotal counts fresh, stale and failed retrievals.
	RetrievalOutcomesTotal *prometheus.CounterVec
	// SharedFetchesTotal counts callers that joined an in-flight fetch.
	SharedFetchesTotal *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OriginFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "origin_fetch_total",
				Help:      "Total number of origin fetches",
			},
			[]string{"result"},
		),
		OriginFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "origin_fetch_duration_seconds",
				Help:      "Duration of origin fetches in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 7, 10},
			},
			[]string{"result"},
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of cache lookups by freshness",
			},
			[]string{"cache", "freshness"},
		),
		RetrievalOutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retrieval_outcomes_total",
				Help:      "Total number of retrievals by outcome",
			},
			[]string{"operation", "outcome"},
		),
		SharedFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shared_fetches_total",
				Help:      "Requests that reused an in-flight origin fetch",
			},
			[]string{"operation"},
		),
	}
}

// RecordOriginFetch records one outbound request.
func (m *Metrics) RecordOriginFetch(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.OriginFetchTotal.WithLabelValues(result).Inc()
	m.OriginFetchDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache read.
func (m *Metrics) RecordCacheLookup(cache, freshness string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(cache, freshness).Inc()
}

// RecordOutcome records how a retrieval was answered.
func (m *Metrics) RecordOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.RetrievalOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordSharedFetch records a caller that did not start its own fetch.
func (m *Metrics) RecordSharedFetch(operation string) {
	if m == nil {
		return
	}
	m.SharedFetchesTotal.WithLabelValues(operation).Inc()
}
