// Package summary holds the extractive summary value object.
package summary

import "unicode/utf8"

// Method describes how the summary was produced.
type Method string

const (
	// MethodExtractive means whole sentences were selected from the source.
	MethodExtractive Method = "extractive"
	// MethodTruncated means no sentence fit and the best one was cut to length.
	MethodTruncated Method = "truncated"
)

// Result is an extractive summary of a text.
type Result struct {
	Summary        string
	OriginalLength int
	SummaryLength  int
	Method         Method
}

// New derives lengths (in characters) from the original text and summary.
func New(original, text string, method Method) Result {
	return Result{
		Summary:        text,
		OriginalLength: utf8.RuneCountInString(original),
		SummaryLength:  utf8.RuneCountInString(text),
		Method:         method,
	}
}

// CompressionRatio is SummaryLength / OriginalLength, or 0 for empty input.
func (r Result) CompressionRatio() float64 {
	if r.OriginalLength == 0 {
		return 0
	}
	return float64(r.SummaryLength) / float64(r.OriginalLength)
}
