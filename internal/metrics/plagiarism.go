package metrics

import "github.com/prometheus/client_golang/prometheus"

// Comparison sources.
const (
	SourceCompare = "compare"
	SourceCheck   = "check"
)

// Plagiarism detection Prometheus metrics.
var (
	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "comparisons_total",
			Help:      "Pairwise similarity evaluations by source and verdict",
		},
		[]string{"source", "verdict"},
	)

	SimilarityScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "similarity_score",
			Help:      "Distribution of clamped cosine similarity scores",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		},
		[]string{"source"},
	)

	DocumentsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "documents_stored",
			Help:      "Number of documents currently in the store",
		},
	)

	SummariesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "summaries_total",
			Help:      "Summaries produced by method",
		},
		[]string{"method"},
	)
)

var plagMetricsRegistered bool

// RegisterPlagiarismMetrics registers the domain metrics. Must be called once from main.
func RegisterPlagiarismMetrics() {
	if plagMetricsRegistered {
		return
	}
	prometheus.MustRegister(ComparisonsTotal)
	prometheus.MustRegister(SimilarityScore)
	prometheus.MustRegister(DocumentsStored)
	prometheus.MustRegister(SummariesTotal)
	plagMetricsRegistered = true
}

// ObserveComparison records one evaluated pair.
func ObserveComparison(source, verdict string, score float64) {
	ComparisonsTotal.WithLabelValues(source, verdict).Inc()
	SimilarityScore.WithLabelValues(source).Observe(score)
}
