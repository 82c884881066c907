// Package similarity holds the vector math and verdict rules shared by
// pairwise comparison and corpus checks.
package similarity

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/plagcheck/internal/domain"
)

// DefaultThreshold is the score at or above which two texts are considered plagiarized.
const DefaultThreshold = 0.8

// Verdict messages.
const (
	MessagePlagiarized = "High semantic similarity detected - potential plagiarism"
	MessageOriginal    = "Low semantic similarity - likely original content"
)

// Result is the verdict for one pair of texts.
type Result struct {
	Score         float64
	IsPlagiarized bool
	Threshold     float64
}

// Message derives the human-readable verdict from IsPlagiarized.
func (r Result) Message() string {
	if r.IsPlagiarized {
		return MessagePlagiarized
	}
	return MessageOriginal
}

// Verdict returns "plagiarized" or "original", used as a metrics label.
func (r Result) Verdict() string {
	if r.IsPlagiarized {
		return "plagiarized"
	}
	return "original"
}

// Cosine returns the cosine similarity of a and b clamped to [0, 1].
// Negative cosines floor to 0. A zero-norm vector yields 0.
// Accumulation is done in float64, so Cosine(v, v) is exactly 1 for any non-zero v.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty vector: %w", domain.ErrEmbeddingProviderError)
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch %d != %d: %w", len(a), len(b), domain.ErrEmbeddingProviderError)
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}

	score := dot / math.Sqrt(na*nb)
	if math.IsNaN(score) {
		return 0, fmt.Errorf("similarity is NaN: %w", domain.ErrEmbeddingProviderError)
	}
	return clamp(score), nil
}

// Evaluate computes the score of a and b and classifies it against threshold.
func Evaluate(a, b []float32, threshold float64) (Result, error) {
	score, err := Cosine(a, b)
	if err != nil {
		return Result{}, err
	}
	return Classify(score, threshold), nil
}

// Classify applies the threshold rule: plagiarized iff score >= threshold.
func Classify(score, threshold float64) Result {
	return Result{
		Score:         score,
		IsPlagiarized: score >= threshold,
		Threshold:     threshold,
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
