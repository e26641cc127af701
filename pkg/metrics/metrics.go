// Package metrics registers the Prometheus collectors the service
// exposes at /metrics: HTTP request counters/histograms and database
// pool/query instrumentation. A single *Metrics is built once at
// startup and threaded into the HTTP middleware and pkg/dbmetrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the service registers.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpen      *prometheus.GaugeVec
	dbPoolInUse     *prometheus.GaugeVec
	dbPoolIdle      *prometheus.GaugeVec
}

// New registers and returns the collectors for serviceName, labeling
// every metric with it so a shared Prometheus instance can scrape
// multiple services.
func New(serviceName string) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookingengine",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed, by route, method and status code.",
			ConstLabels: prometheus.Labels{
				"service": serviceName,
			},
		}, []string{"route", "method", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bookingengine",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds, by route and method.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": serviceName,
			},
		}, []string{"route", "method"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bookingengine",
			Name:      "db_query_duration_seconds",
			Help:      "Database call latency in seconds, by operation kind.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": serviceName,
			},
		}, []string{"operation"}),

		dbPoolOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bookingengine",
			Name:      "db_pool_open_connections",
			Help:      "Open database connections.",
		}, []string{"service"}),
		dbPoolInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bookingengine",
			Name:      "db_pool_in_use_connections",
			Help:      "Database connections currently in use.",
		}, []string{"service"}),
		dbPoolIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bookingengine",
			Name:      "db_pool_idle_connections",
			Help:      "Idle database connections.",
		}, []string{"service"}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbPoolOpen,
		m.dbPoolInUse,
		m.dbPoolIdle,
	)

	return m
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(route, method, status string, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObserveDBQuery records one completed database call.
func (m *Metrics) ObserveDBQuery(serviceName, operation string, d time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetDBPoolStats publishes the current connection-pool gauges.
func (m *Metrics) SetDBPoolStats(serviceName string, open, inUse, idle int) {
	m.dbPoolOpen.WithLabelValues(serviceName).Set(float64(open))
	m.dbPoolInUse.WithLabelValues(serviceName).Set(float64(inUse))
	m.dbPoolIdle.WithLabelValues(serviceName).Set(float64(idle))
}
