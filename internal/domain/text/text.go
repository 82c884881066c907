// Package text holds the lexical helpers shared by the summarizer and the
// local embedder: sentence segmentation, tokenization and stopwords.
package text

import (
	"regexp"
	"strings"
)

var (
	sentencePattern = regexp.MustCompile(`[^.!?]+(?:[.!?]+|$)`)
	tokenPattern    = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)
)

// Sentences splits s on runs of '.', '!' and '?'. Terminal punctuation stays
// with its sentence, surrounding whitespace is trimmed, and a trailing
// fragment without punctuation counts as a sentence.
func Sentences(s string) []string {
	parts := sentencePattern.FindAllString(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Tokens returns lower-cased word tokens of s.
func Tokens(s string) []string {
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

// Words splits s on whitespace, keeping punctuation attached.
func Words(s string) []string {
	return strings.Fields(s)
}

// IsStopword reports whether tok carries no topical weight.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on",
		"at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its",
		"this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don",
		"should", "now", "not", "no", "nor", "do", "does", "did", "has", "have", "had", "he", "she",
		"they", "them", "their", "we", "us", "our", "you", "your", "i", "me", "my", "his", "her",
		"what", "which", "who", "whom", "when", "where", "why", "how", "all", "any", "both", "each",
		"few", "more", "most", "other", "some", "only", "also", "there", "here", "would", "could",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
