package chi

import (
	"context"

	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	domsum "github.com/kailas-cloud/plagcheck/internal/domain/summary"
	healthuc "github.com/kailas-cloud/plagcheck/internal/usecase/health"
)

// Comparer scores two texts.
type Comparer interface {
	Compare(ctx context.Context, textA, textB string) (domsim.Result, error)
}

// DocumentService manages the stored corpus.
type DocumentService interface {
	Add(ctx context.Context, filename, text string) (domdoc.Document, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	List(ctx context.Context) ([]domdoc.Document, error)
	Remove(ctx context.Context, id string) error
}

// Checker compares one stored document against the rest of the corpus.
type Checker interface {
	Check(ctx context.Context, documentID string) (domcheck.Report, error)
}

// Summarizer produces extractive summaries.
type Summarizer interface {
	Summarize(ctx context.Context, input string, minLength, maxLength int) (domsum.Result, error)
	DefaultBounds() (minLength, maxLength int)
}

// HealthService reports component status.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
