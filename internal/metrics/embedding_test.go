package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveEmbedding(t *testing.T) {
	const provider, model = "test-success", "m1"

	ObserveEmbedding(provider, model, 3*time.Millisecond, 5, 7, 256)

	if got := testutil.ToFloat64(embeddingRequestsTotal.WithLabelValues(provider, model, "success")); got != 1 {
		t.Errorf("success requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(embeddingTokensTotal.WithLabelValues(provider, model, "total")); got != 7 {
		t.Errorf("total tokens = %v, want 7", got)
	}
	if got := testutil.ToFloat64(embeddingDimensions.WithLabelValues(provider, model)); got != 256 {
		t.Errorf("dimensions = %v, want 256", got)
	}
}

func TestObserveEmbedding_NoUsage(t *testing.T) {
	const provider, model = "test-nousage", "m1"

	ObserveEmbedding(provider, model, time.Millisecond, 0, 0, 8)

	if got := testutil.ToFloat64(embeddingTokensTotal.WithLabelValues(provider, model, "prompt")); got != 0 {
		t.Errorf("prompt tokens = %v, want 0", got)
	}
}

func TestObserveEmbeddingFailure(t *testing.T) {
	const provider, model = "test-failure", "m1"

	ObserveEmbeddingFailure(provider, model, EmbedErrAPI)
	ObserveEmbeddingFailure(provider, model, EmbedErrInvalidOutput)

	if got := testutil.ToFloat64(embeddingRequestsTotal.WithLabelValues(provider, model, "error")); got != 1 {
		t.Errorf("failed requests = %v, want 1 (invalid output is not a failed call)", got)
	}
	if got := testutil.ToFloat64(embeddingErrorsTotal.WithLabelValues(provider, model, EmbedErrInvalidOutput)); got != 1 {
		t.Errorf("invalid_output errors = %v, want 1", got)
	}
}
