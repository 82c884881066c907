package plagcheck

import (
	"context"

	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	domsum "github.com/kailas-cloud/plagcheck/internal/domain/summary"
)

// --- similarityUseCase mock ---

type mockSimilarityUC struct {
	compareFn func(ctx context.Context, a, b string) (domsim.Result, error)
}

func (m *mockSimilarityUC) Compare(ctx context.Context, a, b string) (domsim.Result, error) {
	return m.compareFn(ctx, a, b)
}

// --- documentUseCase mock ---

type mockDocumentUC struct {
	addFn    func(ctx context.Context, filename, text string) (domdoc.Document, error)
	getFn    func(ctx context.Context, id string) (domdoc.Document, error)
	listFn   func(ctx context.Context) ([]domdoc.Document, error)
	removeFn func(ctx context.Context, id string) error
}

func (m *mockDocumentUC) Add(ctx context.Context, filename, text string) (domdoc.Document, error) {
	return m.addFn(ctx, filename, text)
}

func (m *mockDocumentUC) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentUC) List(ctx context.Context) ([]domdoc.Document, error) {
	return m.listFn(ctx)
}

func (m *mockDocumentUC) Remove(ctx context.Context, id string) error {
	return m.removeFn(ctx, id)
}

// --- checkUseCase mock ---

type mockCheckUC struct {
	checkFn func(ctx context.Context, id string) (domcheck.Report, error)
}

func (m *mockCheckUC) Check(ctx context.Context, id string) (domcheck.Report, error) {
	return m.checkFn(ctx, id)
}

// --- summarizeUseCase mock ---

type mockSummarizeUC struct {
	summarizeFn func(ctx context.Context, input string, minLength, maxLength int) (domsum.Result, error)
	minLength   int
	maxLength   int
}

func (m *mockSummarizeUC) Summarize(ctx context.Context, input string, minLength, maxLength int) (domsum.Result, error) {
	return m.summarizeFn(ctx, input, minLength, maxLength)
}

func (m *mockSummarizeUC) DefaultBounds() (minLength, maxLength int) {
	return m.minLength, m.maxLength
}

// --- Embedder mock ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}
