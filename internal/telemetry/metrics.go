// Package telemetry provides application-level observability for the CMS backend.
//
// # Prometheus Metrics Endpoint
//
// All metrics are registered against the default Prometheus registry and are
// automatically available on the side-channel HTTP server started by main.go:
//
//	GET http(s)://<host>:<CMS_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090.  The endpoint returns data in the Prometheus text exposition
// format (Content-Type: text/plain; version=0.0.4) and is intended to be scraped by
// a Prometheus server every 15–60 seconds.  It is NOT served by the Gin router.
//
// # Metric Groups
//
//   - HTTP request counters and latency histograms (labelled by route template, not raw URL)
//   - Activity log write counters and retention sweep metrics
//   - Media upload counters
//   - Admin login attempt counters
//   - Database connection pool gauge (polled every 30 s)
//
// # Label Cardinality
//
// HTTP metrics use c.FullPath() (route template such as /api/admin/events/:id)
// rather than the raw request URL to prevent unbounded label cardinality from
// user-supplied path segments such as record IDs.
//
// # Usage
//
// Import the package for side effects so metrics are registered before the HTTP server
// starts listening:
//
//	import _ "github.com/bondhu-gosthi/cms-backend/internal/telemetry"
//
// Or import it directly and use an exported var:
//
//	telemetry.ActivityLogsRecordedTotal.WithLabelValues(module, action).Inc()
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics — labelled by method, route template, and status code.
//
// HTTPRequestsTotal is a CounterVec with labels {method, path, status}.
// The path label holds the Gin route template (e.g. /api/admin/events/:id),
// NOT the raw URL, to prevent unbounded cardinality.
//
// Example PromQL queries:
//   - Request rate (req/s, 5 m window):  rate(http_requests_total[5m])
//   - Error rate (%):                    sum(rate(http_requests_total{status=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) * 100
//   - Requests by route:                 sum by (path) (rate(http_requests_total[5m]))
//
// HTTPRequestDuration is a HistogramVec with labels {method, path} and exponential-ish
// buckets from 5 ms to 30 s.  Use histogram_quantile to compute latency percentiles.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Activity log metrics — recorded by the audit recorder and the retention sweeper.
//
// ActivityLogsRecordedTotal is a CounterVec with labels {module, action} incremented
// once per activity log entry successfully written.  Both label values come from
// small closed enums, so cardinality stays bounded.
//
// Example PromQL queries:
//   - Write rate by module:   sum by (module) (rate(activity_logs_recorded_total[1h]))
//   - Most active operations: topk(5, sum by (module, action) (activity_logs_recorded_total))
//
// ActivityLogWriteErrorsTotal counts entries that could not be persisted.  Writes are
// fire-and-forget, so this counter is the only durable signal of a broken audit trail.
// An alert on increase(activity_log_write_errors_total[10m]) > 0 is recommended.
//
// ActivityLogsExpiredTotal counts entries removed by retention sweeps (startup and
// periodic).  RetentionSweepDuration observes how long each sweep took.
var (
	ActivityLogsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_logs_recorded_total",
			Help: "Total number of activity log entries written, by module and action.",
		},
		[]string{"module", "action"},
	)

	ActivityLogWriteErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_log_write_errors_total",
			Help: "Total number of activity log entries that failed to persist.",
		},
	)

	ActivityLogsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_logs_expired_total",
			Help: "Total number of activity log entries deleted by retention sweeps.",
		},
	)

	RetentionSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retention_sweep_duration_seconds",
			Help:    "Duration of a single activity log retention sweep.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MediaUploadsTotal is a CounterVec with labels {backend, status} incremented once
// per media upload attempt.  "backend" is the storage backend name (local, s3, azure,
// gcs) and "status" is "ok" or "error".
//
// Example PromQL queries:
//   - Upload failure rate:  sum(rate(media_uploads_total{status="error"}[1h]))
//   - Uploads by backend:   sum by (backend) (rate(media_uploads_total[1h]))
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "media_uploads_total",
		Help: "Total number of media upload attempts, by storage backend and outcome.",
	},
	[]string{"backend", "status"},
)

// LoginAttemptsTotal is a CounterVec with label {result} ("success" or "failure")
// incremented on every admin login attempt.  A spike in failures is a useful
// brute-force signal.
//
// Example PromQL queries:
//   - Failed login rate:  rate(admin_login_attempts_total{result="failure"}[15m])
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_login_attempts_total",
		Help: "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// DBOpenConnections is a Gauge that tracks the number of open connections currently
// held by the sql.DB connection pool.  It is sampled every 30 seconds by
// StartDBStatsCollector rather than per-request to avoid the overhead of sql.DB.Stats().
//
// Example PromQL queries:
//   - Pool utilisation (%): db_open_connections / <CMS_DATABASE_MAX_CONNECTIONS> * 100
//   - Alert on near-exhaustion: db_open_connections > 20  (for max_connections=25)
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB connection
// pool statistics every 30 seconds and updates the DBOpenConnections gauge.
// The goroutine exits cleanly when the database becomes unreachable (db.Ping fails),
// which happens automatically when the application shuts down and defers db.Close().
//
// Call this once, immediately after db.Connect() succeeds in main.go:
//
//	telemetry.StartDBStatsCollector(database)
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()
}
