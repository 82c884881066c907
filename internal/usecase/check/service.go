package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	"github.com/kailas-cloud/plagcheck/internal/logger"
	"github.com/kailas-cloud/plagcheck/internal/metrics"
)

// Service checks one stored document against the rest of the corpus.
type Service struct {
	corpus    Corpus
	threshold float64
}

// New creates a check service. A non-positive threshold falls back to the default.
func New(corpus Corpus, threshold float64) *Service {
	if threshold <= 0 {
		threshold = domsim.DefaultThreshold
	}
	return &Service{corpus: corpus, threshold: threshold}
}

// Check compares the cached embedding of documentID with every other document
// in one corpus snapshot. Matches follow insertion order. A document whose
// embedding length differs from the subject's fails the check with an
// EmbeddingMismatchError naming it.
func (s *Service) Check(ctx context.Context, documentID string) (domcheck.Report, error) {
	ctx = logger.With(ctx, zap.String("document_id", documentID))

	docs, err := s.corpus.List(ctx)
	if err != nil {
		return domcheck.Report{}, fmt.Errorf("snapshot corpus: %w", err)
	}

	subject := -1
	for i := range docs {
		if docs[i].ID() == documentID {
			subject = i
			break
		}
	}
	if subject < 0 {
		return domcheck.Report{}, domain.NewDocumentNotFound(documentID)
	}
	subj := docs[subject]

	want := len(subj.Embedding())

	matches := make([]domcheck.Match, 0, len(docs)-1)
	for i := range docs {
		if i == subject {
			continue
		}
		cand := docs[i]
		// Документ из другого векторного пространства (сменили dimensions) несравним,
		// это не сбой провайдера: вызывающий должен удалить или перезалить его.
		if got := len(cand.Embedding()); got != want {
			return domcheck.Report{}, domain.NewEmbeddingMismatch(cand.ID(), got, want)
		}
		res, err := domsim.Evaluate(subj.Embedding(), cand.Embedding(), s.threshold)
		if err != nil {
			return domcheck.Report{}, fmt.Errorf("compare with %s: %w", cand.ID(), err)
		}
		matches = append(matches, domcheck.Match{
			DocumentID: cand.ID(),
			Filename:   cand.Filename(),
			Result:     res,
		})
	}

	for _, m := range matches {
		metrics.ObserveComparison(metrics.SourceCheck, m.Result.Verdict(), m.Result.Score)
	}

	report := domcheck.NewReport(subj.ID(), subj.Filename(), matches)
	logger.FromContext(ctx).Info("Document checked",
		zap.Int("compared", len(report.Matches)),
		zap.Int("plagiarized", report.PlagiarismCount),
		zap.Float64("average_similarity", report.AverageSimilarity),
	)
	return report, nil
}
