// Package metrics собирает Prometheus-метрики сервиса: HTTP запросы,
// длительность SQL запросов и состояние пула соединений.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors used by the service.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbPoolConnections   *prometheus.GaugeVec
	txRetriesTotal      *prometheus.CounterVec
}

// New registers and returns the service metrics.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "SQL query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbPoolConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_connections",
			Help:        "Database connection pool state.",
			ConstLabels: constLabels,
		}, []string{"state"}),

		txRetriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_serialization_retries_total",
			Help:        "Total number of serializable transaction retries.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}
}

// ObserveHTTPRequest records one finished HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery records the duration of one SQL statement.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveTxRetry records one serializable transaction retry.
func (m *Metrics) ObserveTxRetry(reason string) {
	m.txRetriesTotal.WithLabelValues(reason).Inc()
}

// SetDBPoolStats publishes the current connection pool state.
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbPoolConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbPoolConnections.WithLabelValues("idle").Set(float64(stats.Idle))
}
