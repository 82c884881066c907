package check

import (
	"math"
	"testing"

	"github.com/kailas-cloud/plagcheck/internal/domain/similarity"
)

func match(id string, score float64) Match {
	return Match{DocumentID: id, Result: similarity.Classify(score, similarity.DefaultThreshold)}
}

func TestNewReport_Empty(t *testing.T) {
	r := NewReport("d1", "a.txt", nil)
	if r.Matches == nil {
		t.Fatal("Matches must be an empty slice, not nil")
	}
	if len(r.Matches) != 0 || r.AverageSimilarity != 0 || r.PlagiarismCount != 0 {
		t.Errorf("unexpected report: %+v", r)
	}
}

func TestNewReport_Aggregates(t *testing.T) {
	r := NewReport("d1", "a.txt", []Match{
		match("d2", 0.9),
		match("d3", 0.5),
		match("d4", 0.8),
	})

	want := (0.9 + 0.5 + 0.8) / 3
	if math.Abs(r.AverageSimilarity-want) > 1e-12 {
		t.Errorf("AverageSimilarity = %v, want %v", r.AverageSimilarity, want)
	}
	if r.PlagiarismCount != 2 {
		t.Errorf("PlagiarismCount = %d, want 2", r.PlagiarismCount)
	}
	if r.Matches[0].DocumentID != "d2" || r.Matches[2].DocumentID != "d4" {
		t.Errorf("order not preserved: %+v", r.Matches)
	}
}

func TestReport_SortedBySimilarity(t *testing.T) {
	r := NewReport("d1", "a.txt", []Match{
		match("d2", 0.3),
		match("d3", 0.9),
		match("d4", 0.3),
		match("d5", 0.7),
	})

	sorted := r.SortedBySimilarity()
	got := make([]string, len(sorted.Matches))
	for i, m := range sorted.Matches {
		got[i] = m.DocumentID
	}
	want := []string{"d3", "d5", "d2", "d4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}

	// Original report is untouched
	if r.Matches[0].DocumentID != "d2" {
		t.Error("SortedBySimilarity mutated the receiver")
	}
	if sorted.AverageSimilarity != r.AverageSimilarity {
		t.Error("aggregates must not change when sorting")
	}
}
