package embedding

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	"github.com/kailas-cloud/plagcheck/internal/domain/text"
	"github.com/kailas-cloud/plagcheck/internal/metrics"
)

const (
	// HashingProvider is the provider name of the local embedder.
	HashingProvider = "hashing"
	// HashingModel is reported as the model name in logs and metrics.
	HashingModel = "feature-hashing-v1"
	// DefaultHashingDimensions is used when no dimension is configured.
	DefaultHashingDimensions = 512
)

// HashingEmbedder is a deterministic local embedder. Word unigrams (stopwords
// removed) and bigrams are hashed into a fixed number of buckets with
// log-scaled term frequency, then L2-normalized.
// All components are non-negative, so any non-empty text maps to a non-zero vector.
type HashingEmbedder struct {
	dimensions int
}

// NewHashingEmbedder creates a local embedder producing vectors of the given size.
func NewHashingEmbedder(dimensions int) *HashingEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultHashingDimensions
	}
	return &HashingEmbedder{dimensions: dimensions}
}

// Dimensions returns the vector size.
func (e *HashingEmbedder) Dimensions() int { return e.dimensions }

// Embed implements domain.Embedder.
func (e *HashingEmbedder) Embed(_ context.Context, s string) (domain.EmbeddingResult, error) {
	start := time.Now()

	feats := features(s)
	counts := make(map[uint64]int, len(feats))
	for _, f := range feats {
		counts[xxhash.Sum64String(f)%uint64(e.dimensions)]++
	}

	vec := make([]float64, e.dimensions)
	for bucket, tf := range counts {
		vec[bucket] = 1 + math.Log(float64(tf))
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, e.dimensions)
	if norm > 0 {
		for i, v := range vec {
			out[i] = float32(v / norm)
		}
	}

	metrics.ObserveEmbedding(HashingProvider, HashingModel, time.Since(start), len(feats), len(feats), e.dimensions)

	return domain.EmbeddingResult{
		Embedding:    out,
		PromptTokens: len(feats),
		TotalTokens:  len(feats),
	}, nil
}

// features extracts hashed features. Texts made only of stopwords fall back
// to all tokens, and texts without word characters fall back to their runes.
func features(s string) []string {
	toks := text.Tokens(s)

	out := make([]string, 0, 2*len(toks))
	for _, t := range toks {
		if !text.IsStopword(t) {
			out = append(out, "u:"+t)
		}
	}
	for i := 1; i < len(toks); i++ {
		out = append(out, "b:"+toks[i-1]+" "+toks[i])
	}
	if len(out) > 0 {
		return out
	}

	for _, t := range toks {
		out = append(out, "u:"+t)
	}
	if len(out) > 0 {
		return out
	}

	for _, r := range strings.TrimSpace(s) {
		out = append(out, "r:"+string(r))
	}
	return out
}
