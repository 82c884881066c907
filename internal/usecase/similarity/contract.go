package similarity

import (
	"context"

	"github.com/kailas-cloud/plagcheck/internal/domain"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
