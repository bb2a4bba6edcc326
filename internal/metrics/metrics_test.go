package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch("category", 120*time.Millisecond, nil)
	m.ObserveFetch("category", time.Second, errors.New("boom"))
	m.ObserveFetch("search", time.Second, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedFetches.WithLabelValues("category", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedFetches.WithLabelValues("category", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedFetches.WithLabelValues("search", "ok")))
}

func TestObserveDecisionAndCache(t *testing.T) {
	m := New()
	m.ObserveDecision("")
	m.ObserveDecision("")
	m.ObserveDecision("keyword")
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilterDecisions.WithLabelValues("admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilterDecisions.WithLabelValues("keyword")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveDecision("sentiment")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `newshorizon_filter_decisions_total{outcome="sentiment"} 1`)
}
