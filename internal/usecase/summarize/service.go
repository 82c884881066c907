// Package summarize builds extractive summaries from lexical statistics only.
package summarize

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domsum "github.com/kailas-cloud/plagcheck/internal/domain/summary"
	"github.com/kailas-cloud/plagcheck/internal/domain/text"
	"github.com/kailas-cloud/plagcheck/internal/logger"
	"github.com/kailas-cloud/plagcheck/internal/metrics"
)

// Defaults.
const (
	DefaultMinTextLength = 20
	DefaultMinLength     = 30
	DefaultMaxLength     = 150
	DefaultPositionBonus = 0.5
)

// minTokenLength drops short tokens from frequency statistics.
const minTokenLength = 3

// Config holds summarizer parameters.
type Config struct {
	MinTextLength    int
	DefaultMinLength int
	DefaultMaxLength int
	PositionBonus    float64
}

// Summarizer selects the most representative sentences of a text.
type Summarizer struct {
	cfg Config
}

// New creates a Summarizer. Zero values in cfg fall back to defaults.
func New(cfg Config) *Summarizer {
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultMinTextLength
	}
	if cfg.DefaultMinLength <= 0 {
		cfg.DefaultMinLength = DefaultMinLength
	}
	if cfg.DefaultMaxLength <= 0 {
		cfg.DefaultMaxLength = DefaultMaxLength
	}
	if cfg.PositionBonus < 0 {
		cfg.PositionBonus = 0
	}
	return &Summarizer{cfg: cfg}
}

// DefaultBounds returns the lengths used when a request omits them.
func (s *Summarizer) DefaultBounds() (minLength, maxLength int) {
	return s.cfg.DefaultMinLength, s.cfg.DefaultMaxLength
}

// MinTextLength returns the shortest accepted input, in characters.
func (s *Summarizer) MinTextLength() int { return s.cfg.MinTextLength }

type sentence struct {
	pos   int
	text  string
	size  int
	score float64
}

// Summarize returns an extractive summary no longer than maxLength characters.
// It aims for at least minLength characters; if the best sentence alone exceeds
// maxLength the result is its whole-word prefix.
func (s *Summarizer) Summarize(ctx context.Context, input string, minLength, maxLength int) (domsum.Result, error) {
	if err := s.validate(input, minLength, maxLength); err != nil {
		return domsum.Result{}, err
	}

	trimmed := strings.TrimSpace(input)
	sents := s.rank(trimmed)

	var (
		picked []sentence
		total  int
	)
	used := make([]bool, len(sents))
	for i, sn := range sents {
		add := sn.size
		if len(picked) > 0 {
			add++
		}
		if total+add > maxLength {
			continue
		}
		picked = append(picked, sn)
		used[i] = true
		total += add
		if total >= minLength {
			break
		}
	}

	method := domsum.MethodExtractive
	if len(picked) == 0 {
		picked = []sentence{{pos: sents[0].pos, text: truncateWords(sents[0].text, maxLength)}}
		method = domsum.MethodTruncated
	} else {
		// Добираем до minLength префиксами оставшихся предложений.
		for i, sn := range sents {
			if total >= minLength {
				break
			}
			budget := maxLength - total - 1
			if used[i] || budget <= 0 {
				continue
			}
			prefix := wholeWordPrefix(sn.text, budget)
			if prefix == "" {
				continue
			}
			picked = append(picked, sentence{pos: sn.pos, text: prefix})
			total += 1 + utf8.RuneCountInString(prefix)
		}
	}

	sort.Slice(picked, func(i, j int) bool { return picked[i].pos < picked[j].pos })
	parts := make([]string, len(picked))
	for i, p := range picked {
		parts[i] = p.text
	}

	result := domsum.New(trimmed, strings.Join(parts, " "), method)
	metrics.SummariesTotal.WithLabelValues(string(method)).Inc()
	logger.FromContext(ctx).Debug("Text summarized",
		zap.Int("original_length", result.OriginalLength),
		zap.Int("summary_length", result.SummaryLength),
		zap.String("method", string(method)),
	)
	return result, nil
}

func (s *Summarizer) validate(input string, minLength, maxLength int) error {
	if !utf8.ValidString(input) {
		return domain.NewInvalidInput("text", "must be valid UTF-8 text")
	}
	if utf8.RuneCountInString(strings.TrimSpace(input)) < s.cfg.MinTextLength {
		return domain.NewInvalidInput("text", fmt.Sprintf("must be at least %d characters", s.cfg.MinTextLength))
	}
	if minLength <= 0 {
		return domain.NewInvalidInput("min_length", "must be positive")
	}
	if maxLength <= 0 {
		return domain.NewInvalidInput("max_length", "must be positive")
	}
	if minLength > maxLength {
		return domain.NewInvalidInput("min_length", "must not exceed max_length")
	}
	return nil
}

// rank splits text into sentences and orders them by score, descending.
// Ties keep source order.
func (s *Summarizer) rank(trimmed string) []sentence {
	raw := text.Sentences(trimmed)
	if len(raw) == 0 {
		raw = []string{strings.Join(text.Words(trimmed), " ")}
	}

	tokens := make([][]string, len(raw))
	freq := make(map[string]float64)
	for i, r := range raw {
		for _, tok := range text.Tokens(r) {
			if utf8.RuneCountInString(tok) < minTokenLength || text.IsStopword(tok) {
				continue
			}
			tokens[i] = append(tokens[i], tok)
			freq[tok]++
		}
	}

	var maxFreq float64
	for _, f := range freq {
		maxFreq = math.Max(maxFreq, f)
	}

	sents := make([]sentence, len(raw))
	last := len(raw) - 1
	for i, r := range raw {
		var score float64
		if len(tokens[i]) > 0 {
			for _, tok := range tokens[i] {
				score += freq[tok] / maxFreq
			}
			score /= math.Sqrt(float64(len(tokens[i])))
		}
		if i == 0 || i == last {
			score += s.cfg.PositionBonus
		}
		sents[i] = sentence{pos: i, text: r, size: utf8.RuneCountInString(r), score: score}
	}

	sort.SliceStable(sents, func(i, j int) bool { return sents[i].score > sents[j].score })
	return sents
}

// truncateWords returns the longest whole-word prefix of s within limit
// characters. A first word longer than limit is cut on a rune boundary.
func truncateWords(s string, limit int) string {
	if p := wholeWordPrefix(s, limit); p != "" {
		return p
	}
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}

// wholeWordPrefix returns the longest prefix of complete words fitting in limit characters.
func wholeWordPrefix(s string, limit int) string {
	var (
		b    strings.Builder
		size int
	)
	for _, w := range text.Words(s) {
		add := utf8.RuneCountInString(w)
		if size > 0 {
			add++
		}
		if size+add > limit {
			break
		}
		if size > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		size += add
	}
	return b.String()
}
