package document

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	"github.com/kailas-cloud/plagcheck/internal/logger"
	"github.com/kailas-cloud/plagcheck/internal/metrics"
)

// Service owns the document corpus. Mutations are serialized against each
// other and against reads, so List always returns a consistent snapshot.
type Service struct {
	mu       sync.RWMutex
	repo     Repository
	embedder Embedder
	now      func() time.Time
}

// New creates a document service.
func New(repo Repository, embedder Embedder) *Service {
	return &Service{repo: repo, embedder: embedder, now: time.Now}
}

// Add validates text, computes its embedding once and stores a new document.
func (s *Service) Add(ctx context.Context, filename, text string) (domdoc.Document, error) {
	if err := domdoc.ValidateText("text", text); err != nil {
		return domdoc.Document{}, err
	}

	// Эмбеддинг считается до захвата блокировки: провайдер может быть медленным.
	result, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("vectorize document: %w", err)
	}
	if err := domain.ValidateEmbedding(result.Embedding, 0); err != nil {
		return domdoc.Document{}, err
	}

	doc, err := domdoc.New(filename, text, result.Embedding, s.now())
	if err != nil {
		return domdoc.Document{}, err
	}

	s.mu.Lock()
	err = s.repo.Save(ctx, doc)
	s.mu.Unlock()
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("save document: %w", err)
	}

	metrics.DocumentsStored.Inc()
	logger.FromContext(ctx).Info("Document added",
		zap.String("document_id", doc.ID()),
		zap.String("filename", doc.Filename()),
		zap.Int("size", doc.Size()),
	)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns a point-in-time snapshot of the corpus in insertion order.
func (s *Service) List(ctx context.Context) ([]domdoc.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Remove hard-deletes a document. Removing an absent id fails.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.repo.Delete(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	metrics.DocumentsStored.Dec()
	logger.FromContext(ctx).Info("Document removed", zap.String("document_id", id))
	return nil
}

// SyncMetrics sets the stored-documents gauge from the repository.
// Persistent backends may already hold documents at startup.
func (s *Service) SyncMetrics(ctx context.Context) error {
	s.mu.RLock()
	n, err := s.repo.Count(ctx)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	metrics.DocumentsStored.Set(float64(n))
	return nil
}
