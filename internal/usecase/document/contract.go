package document

import (
	"context"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
)

// Repository defines the storage contract for documents.
// List must return documents in insertion order.
type Repository interface {
	Save(ctx context.Context, doc domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	List(ctx context.Context) ([]domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
