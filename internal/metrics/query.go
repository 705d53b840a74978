package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every catalog metric.
const Namespace = "catalogo"

// Query Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "queries_total",
			Help:      "Total database statements by operation and status",
		},
		[]string{"operation", "status"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_duration_seconds",
			Help:      "Database statement duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers the query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	queryMetricsRegistered = true
}

// QueryObserver records statement outcomes; it satisfies sqldb.Observer.
type QueryObserver struct{}

// ObserveQuery counts the statement and records its duration.
func (QueryObserver) ObserveQuery(op string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	QueriesTotal.WithLabelValues(op, status).Inc()
	QueryDuration.WithLabelValues(op).Observe(d.Seconds())
}
