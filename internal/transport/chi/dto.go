package chi

import (
	"time"

	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	domsum "github.com/kailas-cloud/plagcheck/internal/domain/summary"
	"github.com/kailas-cloud/plagcheck/internal/version"
)

// CompareRequest is the body of POST /api/similarity/compare.
type CompareRequest struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
}

// SimilarityResponse is one evaluated pair.
type SimilarityResponse struct {
	SimilarityScore float64 `json:"similarity_score"`
	IsPlagiarized   bool    `json:"is_plagiarized"`
	Threshold       float64 `json:"threshold"`
	Message         string  `json:"message"`
}

// UploadRequest is the JSON form of POST /api/documents/upload.
type UploadRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// UploadResponse describes a stored document.
type UploadResponse struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	Size       int       `json:"size"`
	UploadTime time.Time `json:"upload_time"`
	Message    string    `json:"message"`
}

// DocumentSummary is a list entry.
type DocumentSummary struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	Size       int       `json:"size"`
	UploadTime time.Time `json:"upload_time"`
}

// DocumentListResponse is the body of GET /api/documents.
type DocumentListResponse struct {
	Documents  []DocumentSummary `json:"documents"`
	TotalCount int               `json:"total_count"`
}

// DocumentResponse is the body of GET /api/documents/{document_id}.
type DocumentResponse struct {
	DocumentSummary
	Text string `json:"text"`
}

// CheckMatch is one compared document in a check.
type CheckMatch struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	SimilarityResponse
}

// CheckResponse is the body of POST /api/documents/{document_id}/check.
type CheckResponse struct {
	DocumentID        string       `json:"document_id"`
	Filename          string       `json:"filename"`
	Results           []CheckMatch `json:"results"`
	TotalCompared     int          `json:"total_compared"`
	AverageSimilarity float64      `json:"average_similarity"`
	PlagiarismCount   int          `json:"plagiarism_count"`
}

// DeleteResponse confirms a removal.
type DeleteResponse struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
}

// SummarizeRequest is the body of POST /api/summarize. Omitted bounds use server defaults.
type SummarizeRequest struct {
	Text      string `json:"text"`
	MaxLength *int   `json:"max_length"`
	MinLength *int   `json:"min_length"`
}

// SummaryResponse is a generated summary.
type SummaryResponse struct {
	Summary          string  `json:"summary"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
	Method           string  `json:"method"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Documents int               `json:"documents_loaded"`
	Version   string            `json:"version"`
}

// EmbeddingInfo describes the configured provider.
type EmbeddingInfo struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions,omitempty"`
}

// SummarizerInfo describes summarizer bounds.
type SummarizerInfo struct {
	MinTextLength    int `json:"min_text_length"`
	DefaultMinLength int `json:"default_min_length"`
	DefaultMaxLength int `json:"default_max_length"`
}

// InfoResponse is the body of GET /api/info.
type InfoResponse struct {
	Name       string         `json:"name"`
	Build      version.Info   `json:"build"`
	Storage    string         `json:"storage"`
	Embedding  EmbeddingInfo  `json:"embedding"`
	Threshold  float64        `json:"similarity_threshold"`
	Summarizer SummarizerInfo `json:"summarizer"`
	Endpoints  []string       `json:"endpoints"`
}

// RootResponse is the service banner at GET /.
type RootResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Features  []string          `json:"features"`
	Endpoints map[string]string `json:"endpoints"`
}

func similarityToResponse(r domsim.Result) SimilarityResponse {
	return SimilarityResponse{
		SimilarityScore: r.Score,
		IsPlagiarized:   r.IsPlagiarized,
		Threshold:       r.Threshold,
		Message:         r.Message(),
	}
}

func documentToSummary(d domdoc.Document) DocumentSummary {
	return DocumentSummary{
		DocumentID: d.ID(),
		Filename:   d.Filename(),
		Size:       d.Size(),
		UploadTime: d.UploadedAt(),
	}
}

func reportToResponse(r domcheck.Report) CheckResponse {
	results := make([]CheckMatch, len(r.Matches))
	for i, m := range r.Matches {
		results[i] = CheckMatch{
			DocumentID:         m.DocumentID,
			Filename:           m.Filename,
			SimilarityResponse: similarityToResponse(m.Result),
		}
	}
	return CheckResponse{
		DocumentID:        r.DocumentID,
		Filename:          r.Filename,
		Results:           results,
		TotalCompared:     len(results),
		AverageSimilarity: r.AverageSimilarity,
		PlagiarismCount:   r.PlagiarismCount,
	}
}

func summaryToResponse(r domsum.Result) SummaryResponse {
	return SummaryResponse{
		Summary:          r.Summary,
		OriginalLength:   r.OriginalLength,
		SummaryLength:    r.SummaryLength,
		CompressionRatio: r.CompressionRatio(),
		Method:           string(r.Method),
	}
}
