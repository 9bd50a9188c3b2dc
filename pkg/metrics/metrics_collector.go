package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector owns the prometheus series exported on /metrics.
type MetricsCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryTotal  *prometheus.CounterVec
	dbErrorsTotal *prometheus.CounterVec

	feedBackfillTotal prometheus.Counter

	activeGoroutines prometheus.Gauge
}

var (
	globalCollector *MetricsCollector
	once            sync.Once
)

// GetGlobalCollector returns the lazily-built singleton. promauto registers
// on the default registry, so the collector must only be built once.
func GetGlobalCollector() *MetricsCollector {
	once.Do(func() {
		globalCollector = newMetricsCollector()
	})
	return globalCollector
}

func newMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		dbQueryTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		dbErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation", "table"},
		),
		feedBackfillTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_backfill_total",
				Help: "Feed pages that needed recency backfill",
			},
		),
		activeGoroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_goroutines",
				Help: "Number of active goroutines",
			},
		),
	}
}

// RecordHTTPRequest records one served request.
func (mc *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	mc.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	mc.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery counts one store round-trip.
func (mc *MetricsCollector) RecordDBQuery(operation, table string) {
	mc.dbQueryTotal.WithLabelValues(operation, table).Inc()
}

// RecordDBError counts one failed store round-trip.
func (mc *MetricsCollector) RecordDBError(operation, table string) {
	mc.dbErrorsTotal.WithLabelValues(operation, table).Inc()
}

// RecordFeedBackfill counts a feed page that fell back to globally-recent
// posts because the followed network was sparse.
func (mc *MetricsCollector) RecordFeedBackfill() {
	mc.feedBackfillTotal.Inc()
}

// UpdateActiveGoroutines refreshes the goroutine gauge.
func (mc *MetricsCollector) UpdateActiveGoroutines(count int) {
	mc.activeGoroutines.Set(float64(count))
}
