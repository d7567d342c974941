package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Hashtag ingest metrics
	UsageEventsTotal   prometheus.CounterVec // result: "ok", "invalid", "failed"
	UsageRetriesTotal  prometheus.Counter
	IngestBatchSize    prometheus.Histogram

	// Rollover/scoring metrics
	RolloverRunsTotal     prometheus.CounterVec // result: "ok", "aborted"
	RolloverDuration      prometheus.Histogram
	RolloverRecordsTotal  prometheus.CounterVec // outcome: "scored", "skipped", "failed"

	// Trending query metrics
	TrendingQueryDuration prometheus.Histogram
	CacheHitsTotal        prometheus.CounterVec
	CacheMissesTotal      prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			UsageEventsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "hashtag_usage_events_total",
					Help: "Hashtag usage events processed, by result",
				},
				[]string{"result"},
			),
			UsageRetriesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "hashtag_usage_retries_total",
					Help: "Usage increments retried after a storage failure",
				},
			),
			IngestBatchSize: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "hashtag_ingest_batch_size",
					Help:    "Number of tags per ingest call",
					Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
				},
			),
			RolloverRunsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "hashtag_rollover_runs_total",
					Help: "Rollover scheduler ticks, by result",
				},
				[]string{"result"},
			),
			RolloverDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "hashtag_rollover_duration_seconds",
					Help:    "Duration of a full rollover pass",
					Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 60},
				},
			),
			RolloverRecordsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "hashtag_rollover_records_total",
					Help: "Records processed by the rollover pass, by outcome",
				},
				[]string{"outcome"},
			),
			TrendingQueryDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "hashtag_trending_query_duration_seconds",
					Help:    "Latency of trending list reads",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5},
				},
			),
			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Cache hits by cache name",
				},
				[]string{"cache"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Cache misses by cache name",
				},
				[]string{"cache"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it if needed
func Get() *Metrics {
	return Initialize()
}
