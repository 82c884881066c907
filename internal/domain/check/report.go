// Package check holds the result of comparing one stored document against the corpus.
package check

import (
	"sort"

	"github.com/kailas-cloud/plagcheck/internal/domain/similarity"
)

// Match is the comparison of the subject with one other stored document.
type Match struct {
	DocumentID string
	Filename   string
	Result     similarity.Result
}

// Report aggregates all matches of a corpus check.
type Report struct {
	DocumentID        string
	Filename          string
	Matches           []Match
	AverageSimilarity float64
	PlagiarismCount   int
}

// NewReport computes the aggregates over matches. Matches keep the given order.
func NewReport(documentID, filename string, matches []Match) Report {
	if matches == nil {
		matches = []Match{}
	}

	var sum float64
	var count int
	for _, m := range matches {
		sum += m.Result.Score
		if m.Result.IsPlagiarized {
			count++
		}
	}

	avg := 0.0
	if len(matches) > 0 {
		avg = sum / float64(len(matches))
	}

	return Report{
		DocumentID:        documentID,
		Filename:          filename,
		Matches:           matches,
		AverageSimilarity: avg,
		PlagiarismCount:   count,
	}
}

// SortedBySimilarity returns a copy of the report with matches ordered by
// score, highest first. Equal scores keep their corpus order.
func (r Report) SortedBySimilarity() Report {
	sorted := make([]Match, len(r.Matches))
	copy(sorted, r.Matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Result.Score > sorted[j].Result.Score
	})
	r.Matches = sorted
	return r
}
