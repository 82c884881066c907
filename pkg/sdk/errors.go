package plagcheck

import "github.com/kailas-cloud/plagcheck/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrDocumentNotFound       = domain.ErrDocumentNotFound
	ErrInvalidInput           = domain.ErrInvalidInput
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrEmbeddingMismatch      = domain.ErrEmbeddingMismatch
)
