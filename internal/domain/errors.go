package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidInput signals a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbeddingProviderError signals an embedding provider failure or malformed output.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingMismatch signals stored embeddings from different vector spaces.
	ErrEmbeddingMismatch = errors.New("embedding dimensions mismatch")
)

// InvalidInputError wraps ErrInvalidInput with the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates a validation error for field.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// NotFoundError wraps ErrDocumentNotFound with the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDocumentNotFound.Error(), e.ID)
}

// Unwrap matches both ErrDocumentNotFound and the generic ErrNotFound.
func (e *NotFoundError) Unwrap() []error { return []error{ErrDocumentNotFound, ErrNotFound} }

// NewDocumentNotFound creates a not-found error for a document id.
func NewDocumentNotFound(id string) error {
	return &NotFoundError{ID: id}
}

// EmbeddingMismatchError names a stored document whose embedding cannot be
// compared with the subject's.
type EmbeddingMismatchError struct {
	ID         string
	Dimensions int
	Want       int
}

func (e *EmbeddingMismatchError) Error() string {
	return fmt.Sprintf("%s: document %s has %d dimensions, want %d",
		ErrEmbeddingMismatch.Error(), e.ID, e.Dimensions, e.Want)
}

func (e *EmbeddingMismatchError) Unwrap() error { return ErrEmbeddingMismatch }

// NewEmbeddingMismatch creates a mismatch error for the stored document id.
func NewEmbeddingMismatch(id string, dimensions, want int) error {
	return &EmbeddingMismatchError{ID: id, Dimensions: dimensions, Want: want}
}
