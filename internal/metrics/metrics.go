package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the generator service
type Metrics struct {
	// Generation metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	ProviderErrors     *prometheus.CounterVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter

	// Learning metrics
	ExamplesRecorded *prometheus.CounterVec
	PatternsTotal    prometheus.Gauge

	// Audit metrics
	AuditOverallScore prometheus.Histogram

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics creates and registers all Prometheus metrics once per process
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			GenerationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goai_generations_total",
					Help: "Total number of generation requests by method and language",
				},
				[]string{"method", "language"},
			),
			GenerationDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "goai_generation_duration_seconds",
					Help:    "End-to-end generation duration in seconds",
					Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to 51s
				},
				[]string{"method"},
			),
			ProviderErrors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goai_provider_errors_total",
					Help: "Total number of provider failures that triggered the fallback",
				},
				[]string{"provider", "error_type"},
			),
			CacheHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "goai_generation_cache_hits_total",
					Help: "Generation results served from cache",
				},
			),
			CacheMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "goai_generation_cache_misses_total",
					Help: "Generation requests not found in cache",
				},
			),

			ExamplesRecorded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goai_examples_recorded_total",
					Help: "Total number of rated examples recorded",
				},
				[]string{"language"},
			),
			PatternsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "goai_patterns_total",
					Help: "Number of distinct pattern tags in the pattern store",
				},
			),

			AuditOverallScore: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "goai_audit_overall_score",
					Help:    "Overall score of quality audits",
					Buckets: prometheus.LinearBuckets(0, 10, 11),
				},
			),

			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goai_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "goai_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
		}
	})

	return sharedMetrics
}
