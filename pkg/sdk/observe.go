package catalogo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation status labels.
const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusInvalid  = "invalid"
	statusError    = "error"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	items      *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalogo",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalogo",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		items: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalogo",
			Subsystem: "sdk",
			Name:      "page_items",
			Help:      "Specimens returned per listing page.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.items); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("catalogo: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("catalogo: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for SDK operations. A nil observer
// records nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, ErrNotFound):
		return statusNotFound
	case errors.Is(err, ErrEmptyQuery), errors.Is(err, ErrNoCriteriaProvided):
		return statusInvalid
	default:
		return statusError
	}
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := statusOf(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	if status == statusError {
		o.logger.Warn("operation failed",
			"op", op,
			"duration", dur,
			"error", err,
		)
		return
	}
	o.logger.Debug("operation completed",
		"op", op,
		"status", status,
		"duration", dur,
	)
}

// observePage records a listing call and the size of the page it returned.
func (o *observer) observePage(op string, start time.Time, p Page, err error) {
	o.observe(op, start, err)
	if o == nil || o.metrics == nil || err != nil {
		return
	}
	o.metrics.items.WithLabelValues(op).Observe(float64(len(p.Items)))
}
