package check

import (
	"context"

	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
)

// Corpus yields a point-in-time snapshot of all stored documents in insertion order.
type Corpus interface {
	List(ctx context.Context) ([]domdoc.Document, error)
}
