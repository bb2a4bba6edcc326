// Package metrics 暴露抓取与过滤相关的 Prometheus 指标。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	FeedFetches       *prometheus.CounterVec
	FeedFetchDuration *prometheus.HistogramVec
	FilterDecisions   *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New 使用独立的 Registry，测试中可以重复创建
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		FeedFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newshorizon_feed_fetches_total",
			Help: "Feed fetch attempts by kind (category, search) and result (ok, error)",
		}, []string{"kind", "result"}),
		FeedFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "newshorizon_feed_fetch_duration_seconds",
			Help:    "Time spent fetching and parsing one feed",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		FilterDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newshorizon_filter_decisions_total",
			Help: "Content filter decisions by outcome (admitted, keyword, sentiment)",
		}, []string{"outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newshorizon_listing_cache_lookups_total",
			Help: "Listing cache lookups by result (hit, miss)",
		}, []string{"result"}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveFetch(kind string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.FeedFetches.WithLabelValues(kind, result).Inc()
	m.FeedFetchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveDecision reason 为空表示放行
func (m *Metrics) ObserveDecision(reason string) {
	if reason == "" {
		reason = "admitted"
	}
	m.FilterDecisions.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Handler /metrics 接口
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
