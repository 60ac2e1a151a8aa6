package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordOriginFetch("2xx", 120*time.Millisecond)
	m.RecordOriginFetch("2xx", 80*time.Millisecond)
	m.RecordOriginFetch("error", time.Second)
	m.RecordCacheLookup("listing", "fresh")
	m.RecordOutcome("news", "stale")
	m.RecordSharedFetch("content")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OriginFetchTotal.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OriginFetchTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("listing", "fresh")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RetrievalOutcomesTotal.WithLabelValues("news", "stale")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SharedFetchesTotal.WithLabelValues("content")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordOriginFetch("2xx", time.Millisecond)
		m.RecordCacheLookup("listing", "fresh")
		m.RecordOutcome("news", "fresh")
		m.RecordSharedFetch("news")
	})
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
