package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы попытки бронирования
const (
	OutcomeReserved   = "reserved"
	OutcomeConflict   = "conflict"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

// Metrics набор метрик сервиса в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries  *prometheus.CounterVec
	dbDuration *prometheus.HistogramVec
	dbPool     *prometheus.GaugeVec

	reservations *prometheus.CounterVec
	exports      *prometheus.CounterVec
}

// New создает и регистрирует метрики. serviceName используется как namespace.
func New(serviceName string) *Metrics {
	ns := namespace(serviceName)

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		dbQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "db_queries_total",
				Help:      "Count of database queries by operation and result.",
			},
			[]string{"operation", "result"},
		),
		dbDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "db_query_duration_seconds",
				Help:      "Database query latency.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		dbPool: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_pool_connections",
				Help:      "Database connection pool state.",
			},
			[]string{"state"},
		),
		reservations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "reservations_total",
				Help:      "Count of reservation attempts by outcome.",
			},
			[]string{"outcome"},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "booking_exports_total",
				Help:      "Count of booking exports by format.",
			},
			[]string{"format"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.dbQueries,
		m.dbDuration,
		m.dbPool,
		m.reservations,
		m.exports,
	)

	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveQuery реализует dbmetrics.Recorder
func (m *Metrics) ObserveQuery(operation string, dur time.Duration, err error) {
	result := "ok"
	if err != nil && err != sql.ErrNoRows {
		result = "error"
	}
	m.dbQueries.WithLabelValues(operation, result).Inc()
	m.dbDuration.WithLabelValues(operation).Observe(dur.Seconds())
}

// SetPoolStats реализует dbmetrics.Recorder
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	m.dbPool.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbPool.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbPool.WithLabelValues("idle").Set(float64(stats.Idle))
	m.dbPool.WithLabelValues("max_open").Set(float64(stats.MaxOpenConnections))
}

func (m *Metrics) IncReservation(outcome string) {
	m.reservations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncExport(format string) {
	m.exports.WithLabelValues(format).Inc()
}

func namespace(serviceName string) string {
	ns := strings.ToLower(strings.TrimSpace(serviceName))
	ns = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, ns)
	return strings.Trim(ns, "_")
}
