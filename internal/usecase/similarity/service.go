package similarity

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	"github.com/kailas-cloud/plagcheck/internal/logger"
	"github.com/kailas-cloud/plagcheck/internal/metrics"
)

// Service compares two texts through the embedder and classifies the pair.
type Service struct {
	embedder  Embedder
	threshold float64
}

// New creates a similarity service. A non-positive threshold falls back to the default.
func New(embedder Embedder, threshold float64) *Service {
	if threshold <= 0 {
		threshold = domsim.DefaultThreshold
	}
	return &Service{embedder: embedder, threshold: threshold}
}

// Threshold returns the decision boundary applied to every result.
func (s *Service) Threshold() float64 { return s.threshold }

// Compare embeds both texts and returns the clamped cosine verdict.
func (s *Service) Compare(ctx context.Context, textA, textB string) (domsim.Result, error) {
	if strings.TrimSpace(textA) == "" {
		return domsim.Result{}, domain.NewInvalidInput("text1", "must not be empty")
	}
	if strings.TrimSpace(textB) == "" {
		return domsim.Result{}, domain.NewInvalidInput("text2", "must not be empty")
	}

	embA, err := s.embedder.Embed(ctx, textA)
	if err != nil {
		return domsim.Result{}, fmt.Errorf("embed text1: %w", err)
	}

	embB := embA
	if textB != textA {
		embB, err = s.embedder.Embed(ctx, textB)
		if err != nil {
			return domsim.Result{}, fmt.Errorf("embed text2: %w", err)
		}
	}

	result, err := domsim.Evaluate(embA.Embedding, embB.Embedding, s.threshold)
	if err != nil {
		return domsim.Result{}, fmt.Errorf("evaluate: %w", err)
	}

	metrics.ObserveComparison(metrics.SourceCompare, result.Verdict(), result.Score)
	logger.FromContext(ctx).Debug("Texts compared",
		zap.Float64("score", result.Score),
		zap.Bool("plagiarized", result.IsPlagiarized),
	)
	return result, nil
}
