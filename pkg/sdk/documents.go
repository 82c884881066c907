package plagcheck

import (
	"context"
	"fmt"
)

// DocumentService manages the document corpus.
type DocumentService struct {
	svc documentUseCase
	obs *observer
}

// Upload stores text as a new document. An empty filename becomes "untitled".
func (s *DocumentService) Upload(ctx context.Context, filename, text string) (doc Document, err error) {
	op := s.obs.begin("document.upload", "filename", filename)
	defer func() { op.end(err) }()

	d, err := s.svc.Add(ctx, filename, text)
	if err != nil {
		return Document{}, fmt.Errorf("upload document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (doc Document, err error) {
	op := s.obs.begin("document.get", "document_id", id)
	defer func() { op.end(err) }()

	d, err := s.svc.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// List returns all documents in upload order.
func (s *DocumentService) List(ctx context.Context) (docs []Document, err error) {
	op := s.obs.begin("document.list")
	defer func() { op.end(err) }()

	items, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs = make([]Document, len(items))
	for i, d := range items {
		docs[i] = fromInternalDocument(d)
	}
	return docs, nil
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) (err error) {
	op := s.obs.begin("document.delete", "document_id", id)
	defer func() { op.end(err) }()

	if err = s.svc.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
