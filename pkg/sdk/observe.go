package plagcheck

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	verdicts   *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plagcheck",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "plagcheck",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plagcheck",
			Subsystem: "sdk",
			Name:      "verdicts_total",
			Help:      "Evaluated text pairs by operation and verdict.",
		}, []string{"operation", "verdict"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.verdicts); err != nil {
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
				return fmt.Errorf("plagcheck: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("plagcheck: register metric: %w", err)
	}
	return nil
}

// Operation outcomes for the status label.
const (
	statusOK       = "ok"
	statusInvalid  = "invalid"
	statusNotFound = "not_found"
	statusError    = "error"
)

func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, ErrInvalidInput):
		return statusInvalid
	case errors.Is(err, ErrNotFound):
		return statusNotFound
	default:
		return statusError
	}
}

// observer provides logging and metrics for SDK operations.
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

// operation tracks one SDK call from begin to end.
type operation struct {
	obs   *observer
	name  string
	start time.Time
	attrs []any
}

// begin starts tracking op. attrs are added to the completion log entry.
func (o *observer) begin(op string, attrs ...any) *operation {
	return &operation{obs: o, name: op, start: time.Now(), attrs: attrs}
}

// verdict counts one evaluated pair.
func (op *operation) verdict(plagiarized bool) {
	if op.obs == nil || op.obs.metrics == nil {
		return
	}
	v := "original"
	if plagiarized {
		v = "plagiarized"
	}
	op.obs.metrics.verdicts.WithLabelValues(op.name, v).Inc()
}

// end records the outcome. Caller errors (invalid input, missing document)
// are logged at debug level, everything else at warn.
func (op *operation) end(err error) {
	o := op.obs
	if o == nil {
		return
	}
	took := time.Since(op.start)
	status := statusOf(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op.name, status).Inc()
		o.metrics.duration.WithLabelValues(op.name).Observe(took.Seconds())
	}
	if o.logger == nil {
		return
	}

	args := append([]any{"op", op.name, "status", status, "duration", took}, op.attrs...)
	switch status {
	case statusOK:
		o.logger.Debug("operation completed", args...)
	case statusError:
		o.logger.Warn("operation failed", append(args, "error", err)...)
	default:
		o.logger.Debug("operation rejected", append(args, "error", err)...)
	}
}
