package document

import (
	"context"
	"slices"
	"sync"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
)

// MemoryRepo keeps documents in process memory. Contents are lost on restart.
type MemoryRepo struct {
	mu    sync.RWMutex
	docs  map[string]domdoc.Document
	order []string
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]domdoc.Document)}
}

// Save stores the document at the end of the insertion order.
func (r *MemoryRepo) Save(_ context.Context, doc domdoc.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.ID()]; !ok {
		r.order = append(r.order, doc.ID())
	}
	r.docs[doc.ID()] = doc
	return nil
}

// Get returns a document by ID.
func (r *MemoryRepo) Get(_ context.Context, id string) (domdoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return domdoc.Document{}, domain.NewDocumentNotFound(id)
	}
	return doc, nil
}

// List returns a snapshot of all documents in insertion order.
func (r *MemoryRepo) List(_ context.Context) ([]domdoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domdoc.Document, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.docs[id])
	}
	return out, nil
}

// Delete removes a document.
func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return domain.NewDocumentNotFound(id)
	}
	delete(r.docs, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

// Count returns the number of stored documents.
func (r *MemoryRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs), nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(_ context.Context) error { return nil }
