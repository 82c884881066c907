package chi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/metrics"
	healthuc "github.com/kailas-cloud/plagcheck/internal/usecase/health"
	"github.com/kailas-cloud/plagcheck/internal/version"
)

// DefaultMaxUploadBytes caps upload bodies when Info.MaxUploadBytes is unset.
const DefaultMaxUploadBytes int64 = 10 << 20

// ServiceName is reported by the banner and /api/info.
const ServiceName = "plagcheck"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Services bundles the use cases behind the HTTP API.
type Services struct {
	Similarity Comparer
	Documents  DocumentService
	Checker    Checker
	Summarizer Summarizer
	Health     HealthService
}

// Info is the static runtime description served by /api/info.
type Info struct {
	Storage        string
	Embedding      EmbeddingInfo
	Threshold      float64
	Summarizer     SummarizerInfo
	MaxUploadBytes int64
}

// Server serves the plagiarism detection API.
type Server struct {
	svc           Services
	info          Info
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, info Info, logger *zap.Logger) *Server {
	if info.MaxUploadBytes <= 0 {
		info.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		svc:           svc,
		info:          info,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

var endpoints = map[string]string{
	"compare":    "POST /api/similarity/compare",
	"upload":     "POST /api/documents/upload",
	"list":       "GET /api/documents",
	"get":        "GET /api/documents/{document_id}",
	"check":      "POST /api/documents/{document_id}/check",
	"delete":     "DELETE /api/documents/{document_id}",
	"summarize":  "POST /api/summarize",
	"health":     "GET /health",
	"info":       "GET /api/info",
	"prometheus": "GET /metrics",
}

var endpointOrder = []string{
	"compare", "upload", "list", "get", "check", "delete", "summarize", "health", "info", "prometheus",
}

// Routes mounts all handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/info", s.GetInfo)
		r.Post("/similarity/compare", s.CompareTexts)
		r.Post("/summarize", s.Summarize)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.ListDocuments)
			r.Post("/upload", s.UploadDocument)
			r.Get("/{document_id}", s.GetDocument)
			r.Delete("/{document_id}", s.DeleteDocument)
			r.Post("/{document_id}/check", s.CheckDocument)
		})
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    ServiceName,
		Version: version.Version,
		Status:  "running",
		Features: []string{
			"text similarity comparison",
			"document corpus plagiarism check",
			"extractive summarization",
		},
		Endpoints: endpoints,
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:    string(report.Status),
		Checks:    checks,
		Documents: report.Documents,
		Version:   version.Version,
	})
}

// GetInfo handles GET /api/info.
func (s *Server) GetInfo(w http.ResponseWriter, _ *http.Request) {
	list := make([]string, 0, len(endpointOrder))
	for _, e := range endpointOrder {
		list = append(list, endpoints[e])
	}
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:       ServiceName,
		Build:      version.Get(),
		Storage:    s.info.Storage,
		Embedding:  s.info.Embedding,
		Threshold:  s.info.Threshold,
		Summarizer: s.info.Summarizer,
		Endpoints:  list,
	})
}

// CompareTexts handles POST /api/similarity/compare.
func (s *Server) CompareTexts(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	res, err := s.svc.Similarity.Compare(r.Context(), req.Text1, req.Text2)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, similarityToResponse(res))
}

// UploadDocument handles POST /api/documents/upload.
// Accepts multipart/form-data with a "file" part or a JSON {filename, text} body.
func (s *Server) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.info.MaxUploadBytes)

	filename, content, err := s.readUpload(r)
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", s.info.MaxUploadBytes))
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	doc, err := s.svc.Documents.Add(r.Context(), filename, string(content))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	metrics.ObserveUpload(len(content))

	writeJSON(w, http.StatusCreated, UploadResponse{
		DocumentID: doc.ID(),
		Filename:   doc.Filename(),
		Size:       doc.Size(),
		UploadTime: doc.UploadedAt(),
		Message:    "Document uploaded successfully",
	})
}

func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(s.info.MaxUploadBytes); err != nil {
			return "", nil, fmt.Errorf("invalid multipart body: %w", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("missing file part: %w", err)
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return "", nil, fmt.Errorf("read file part: %w", err)
		}
		return hdr.Filename, content, nil
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", nil, fmt.Errorf("invalid request body: %w", err)
	}
	return req.Filename, []byte(req.Text), nil
}

// ListDocuments handles GET /api/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.svc.Documents.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]DocumentSummary, len(docs))
	for i, d := range docs {
		items[i] = documentToSummary(d)
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: items, TotalCount: len(items)})
}

// GetDocument handles GET /api/documents/{document_id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	doc, err := s.svc.Documents.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DocumentResponse{
		DocumentSummary: documentToSummary(doc),
		Text:            doc.Text(),
	})
}

// DeleteDocument handles DELETE /api/documents/{document_id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.svc.Documents.Remove(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{DocumentID: id, Message: "Document deleted successfully"})
}

// CheckDocument handles POST /api/documents/{document_id}/check.
func (s *Server) CheckDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	order, err := sortParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	report, err := s.svc.Checker.Check(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if order == SortSimilarity {
		report = report.SortedBySimilarity()
	}

	writeJSON(w, http.StatusOK, reportToResponse(report))
}

// Summarize handles POST /api/summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	minLength, maxLength := s.svc.Summarizer.DefaultBounds()
	if req.MinLength != nil {
		minLength = *req.MinLength
	}
	if req.MaxLength != nil {
		maxLength = *req.MaxLength
	}

	res, err := s.svc.Summarizer.Summarize(r.Context(), req.Text, minLength, maxLength)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryToResponse(res))
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := documentIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return "", false
	}
	return id, true
}
