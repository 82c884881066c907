package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every plagcheck metric.
const Namespace = "plagcheck"

// Embedding failure kinds for the error_type label.
const (
	EmbedErrAPI           = "api_error"
	EmbedErrEmptyResponse = "empty_response"
	EmbedErrInvalidOutput = "invalid_output"
)

var (
	embeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "requests_total",
			Help:      "Embedding requests by provider, model and outcome",
		},
		[]string{"provider", "model", "status"},
	)

	// Хэширующий эмбеддер отвечает за микросекунды, отсюда мелкие бакеты.
	embeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "request_duration_seconds",
			Help:      "Successful embedding request duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	embeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "tokens_total",
			Help:      "Tokens (or hashed features) consumed by embedding requests",
		},
		[]string{"provider", "model", "type"},
	)

	embeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "errors_total",
			Help:      "Embedding failures by kind",
		},
		[]string{"provider", "model", "error_type"},
	)

	embeddingDimensions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "dimensions",
			Help:      "Vector length last returned by the provider",
		},
		[]string{"provider", "model"},
	)

	// EmbeddingCacheTotal counts cache lookups by result ("hit" / "miss").
	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"},
	)
)

var embMetricsRegistered bool

// RegisterEmbeddingMetrics registers the embedding collectors. Must be called once from main.
func RegisterEmbeddingMetrics() {
	if embMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		embeddingRequestsTotal,
		embeddingRequestDuration,
		embeddingTokensTotal,
		embeddingErrorsTotal,
		embeddingDimensions,
		EmbeddingCacheTotal,
	)
	embMetricsRegistered = true
}

// ObserveEmbedding records a successful provider call.
func ObserveEmbedding(provider, model string, took time.Duration, promptTokens, totalTokens, dims int) {
	embeddingRequestsTotal.WithLabelValues(provider, model, "success").Inc()
	embeddingRequestDuration.WithLabelValues(provider, model).Observe(took.Seconds())
	if totalTokens > 0 {
		embeddingTokensTotal.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
		embeddingTokensTotal.WithLabelValues(provider, model, "total").Add(float64(totalTokens))
	}
	embeddingDimensions.WithLabelValues(provider, model).Set(float64(dims))
}

// ObserveEmbeddingFailure records a failed provider call. Failures of kind
// EmbedErrInvalidOutput happen after a successful call and do not count as
// a failed request.
func ObserveEmbeddingFailure(provider, model, kind string) {
	if kind != EmbedErrInvalidOutput {
		embeddingRequestsTotal.WithLabelValues(provider, model, "error").Inc()
	}
	embeddingErrorsTotal.WithLabelValues(provider, model, kind).Inc()
}
