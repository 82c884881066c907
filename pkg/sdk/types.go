package plagcheck

import (
	"time"

	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	domsum "github.com/kailas-cloud/plagcheck/internal/domain/summary"
)

// Similarity is the evaluated similarity of two texts.
type Similarity struct {
	Score         float64
	IsPlagiarized bool
	Threshold     float64
	Message       string
}

// Document is a stored corpus document.
type Document struct {
	ID         string
	Filename   string
	Text       string
	Size       int // characters
	UploadedAt time.Time
}

// Match is the comparison of a checked document with one other document.
type Match struct {
	DocumentID string
	Filename   string
	Similarity
}

// CheckReport is the result of checking one document against the corpus.
// Matches follow upload order.
type CheckReport struct {
	DocumentID        string
	Filename          string
	Matches           []Match
	AverageSimilarity float64
	PlagiarismCount   int
}

// Summary is an extractive summary of a text.
type Summary struct {
	Text             string
	OriginalLength   int
	SummaryLength    int
	CompressionRatio float64
	Method           string // "extractive" or "truncated"
}

func fromSimilarity(r domsim.Result) Similarity {
	return Similarity{
		Score:         r.Score,
		IsPlagiarized: r.IsPlagiarized,
		Threshold:     r.Threshold,
		Message:       r.Message(),
	}
}

func fromInternalDocument(d domdoc.Document) Document {
	return Document{
		ID:         d.ID(),
		Filename:   d.Filename(),
		Text:       d.Text(),
		Size:       d.Size(),
		UploadedAt: d.UploadedAt(),
	}
}

func fromReport(r domcheck.Report) CheckReport {
	matches := make([]Match, len(r.Matches))
	for i, m := range r.Matches {
		matches[i] = Match{
			DocumentID: m.DocumentID,
			Filename:   m.Filename,
			Similarity: fromSimilarity(m.Result),
		}
	}
	return CheckReport{
		DocumentID:        r.DocumentID,
		Filename:          r.Filename,
		Matches:           matches,
		AverageSimilarity: r.AverageSimilarity,
		PlagiarismCount:   r.PlagiarismCount,
	}
}

func fromSummary(r domsum.Result) Summary {
	return Summary{
		Text:             r.Summary,
		OriginalLength:   r.OriginalLength,
		SummaryLength:    r.SummaryLength,
		CompressionRatio: r.CompressionRatio(),
		Method:           string(r.Method),
	}
}
