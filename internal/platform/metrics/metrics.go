// Package metrics collects and exposes Prometheus metrics for the console.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records store operations, state gauges and HTTP statuses.
type Collector struct {
	operations     *prometheus.CounterVec
	opLatency      *prometheus.HistogramVec
	loading        prometheus.Gauge
	profilePresent prometheus.Gauge
	httpStatus     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_console_operations_total",
			Help: "Completed profile operations by operation and result.",
		}, []string{"operation", "result"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profile_console_operation_duration_seconds",
			Help:    "Duration of profile operations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		loading: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "profile_console_loading",
			Help: "1 while a profile operation is in flight.",
		}),
		profilePresent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "profile_console_profile_present",
			Help: "1 when a profile is held in memory.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_console_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.operations,
		c.opLatency,
		c.loading,
		c.profilePresent,
		c.httpStatus,
	)

	return c
}

// RecordOperation counts a completed operation and observes its latency.
func (c *Collector) RecordOperation(op, result string, elapsed time.Duration) {
	c.operations.WithLabelValues(op, result).Inc()
	c.opLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveState updates the state gauges.
func (c *Collector) ObserveState(loading, profilePresent bool) {
	c.loading.Set(boolToFloat(loading))
	c.profilePresent.Set(boolToFloat(profilePresent))
}

// RecordHTTPStatus counts one response with the given status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Middleware counts every response by status code.
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			c.RecordHTTPStatus(status)
		})
	}
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
