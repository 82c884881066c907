package domain

import (
	"context"
	"fmt"
	"math"
)

// Embedder is the shared text vectorization contract between layers.
// Implementations must be deterministic for a given text and safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// ValidateEmbedding rejects vectors no similarity can be computed from.
// dims <= 0 skips the dimension check.
func ValidateEmbedding(vec []float32, dims int) error {
	if len(vec) == 0 {
		return fmt.Errorf("empty embedding: %w", ErrEmbeddingProviderError)
	}
	if dims > 0 && len(vec) != dims {
		return fmt.Errorf("embedding has %d dimensions, want %d: %w", len(vec), dims, ErrEmbeddingProviderError)
	}
	for i, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("embedding component %d is not finite: %w", i, ErrEmbeddingProviderError)
		}
	}
	return nil
}
