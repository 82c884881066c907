package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveComparison_MultipleSources(t *testing.T) {
	before := testutil.ToFloat64(ComparisonsTotal.WithLabelValues(SourceCheck, "plagiarized"))

	ObserveComparison(SourceCheck, "plagiarized", 0.93)
	ObserveComparison(SourceCheck, "plagiarized", 0.88)
	ObserveComparison(SourceCompare, "original", 0.1)

	got := testutil.ToFloat64(ComparisonsTotal.WithLabelValues(SourceCheck, "plagiarized"))
	if got-before != 2 {
		t.Errorf("plagiarized checks = %v, want +2", got-before)
	}
	if n := testutil.CollectAndCount(SimilarityScore); n < 2 {
		t.Errorf("similarity series = %d, want at least 2", n)
	}
}

func TestDocumentsStoredGauge(t *testing.T) {
	DocumentsStored.Set(3)
	DocumentsStored.Inc()
	DocumentsStored.Dec()
	DocumentsStored.Dec()

	if got := testutil.ToFloat64(DocumentsStored); got != 2 {
		t.Errorf("documents_stored = %v, want 2", got)
	}
}
