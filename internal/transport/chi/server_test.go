package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/plagcheck/internal/usecase/health"
)

func TestRoot(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[RootResponse](t, rr)
	if resp.Name != ServiceName || resp.Status != "running" {
		t.Errorf("unexpected banner %+v", resp)
	}
	if resp.Endpoints["check"] == "" {
		t.Error("expected check endpoint in banner")
	}
}

func TestGetInfo(t *testing.T) {
	info := Info{
		Storage:   "memory",
		Embedding: EmbeddingInfo{Provider: "hashing", Model: "hashing", Dimensions: 256},
		Threshold: 0.8,
	}
	h := newTestRouter(t, newServices(), info, RouterConfig{})

	resp := decode[InfoResponse](t, do(t, h, http.MethodGet, "/api/info", nil))
	if resp.Threshold != 0.8 {
		t.Errorf("threshold = %v", resp.Threshold)
	}
	if resp.Embedding.Dimensions != 256 || resp.Storage != "memory" {
		t.Errorf("unexpected info %+v", resp)
	}
	if len(resp.Endpoints) != len(endpointOrder) {
		t.Errorf("endpoints = %d, want %d", len(resp.Endpoints), len(endpointOrder))
	}
	if resp.Build.Version == "" || resp.Build.GoVersion == "" {
		t.Errorf("build info not populated: %+v", resp.Build)
	}
}

func TestCompare_Identical(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	rr := do(t, newTestHandler(t), http.MethodPost, "/api/similarity/compare",
		CompareRequest{Text1: text, Text2: text})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	resp := decode[SimilarityResponse](t, rr)
	if resp.SimilarityScore != 1 {
		t.Errorf("score = %v, want 1", resp.SimilarityScore)
	}
	if !resp.IsPlagiarized {
		t.Error("identical texts must be plagiarized")
	}
	if resp.Threshold != domsim.DefaultThreshold {
		t.Errorf("threshold = %v", resp.Threshold)
	}
	if resp.Message == "" {
		t.Error("expected message")
	}
}

func TestCompare_Validation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name  string
		body  CompareRequest
		field string
	}{
		{"empty text1", CompareRequest{Text1: "", Text2: "x"}, "text1"},
		{"blank text2", CompareRequest{Text1: "x", Text2: "   "}, "text2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/similarity/compare", tc.body)
			resp := expectError(t, rr, http.StatusBadRequest, CodeValidationFailed)
			if resp.Field != tc.field {
				t.Errorf("field = %q, want %q", resp.Field, tc.field)
			}
		})
	}
}

func TestCompare_MalformedBody(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodPost, "/api/similarity/compare", "{not json")
	expectError(t, rr, http.StatusBadRequest, CodeBadRequest)
}

func TestCompare_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
		msg    string
	}{
		{
			"provider error", fmt.Errorf("embed text1: %w", domain.ErrEmbeddingProviderError),
			http.StatusBadGateway, CodeEmbeddingProviderError, "embedding provider error",
		},
		{
			"internal error", errors.New("connection reset by peer at 10.0.0.1"),
			http.StatusInternalServerError, CodeInternalError, "internal error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newServices()
			svc.Similarity = &mockComparer{compareFn: func(context.Context, string, string) (domsim.Result, error) {
				return domsim.Result{}, tc.err
			}}
			h := newTestRouter(t, svc, Info{}, RouterConfig{})

			rr := do(t, h, http.MethodPost, "/api/similarity/compare", CompareRequest{Text1: "a", Text2: "b"})
			resp := expectError(t, rr, tc.status, tc.code)
			if resp.Message != tc.msg {
				t.Errorf("message = %q, want %q", resp.Message, tc.msg)
			}
		})
	}
}

func TestDocumentLifecycle(t *testing.T) {
	h := newTestHandler(t)

	up := upload(t, h, "essay.txt", "Привет, мир")
	if up.DocumentID == "" {
		t.Fatal("expected document id")
	}
	if up.Filename != "essay.txt" || up.Size != 11 {
		t.Errorf("unexpected upload response %+v", up)
	}
	if up.UploadTime.IsZero() {
		t.Error("expected upload_time")
	}

	list := decode[DocumentListResponse](t, do(t, h, http.MethodGet, "/api/documents", nil))
	if list.TotalCount != 1 || len(list.Documents) != 1 || list.Documents[0].DocumentID != up.DocumentID {
		t.Fatalf("unexpected list %+v", list)
	}

	got := decode[DocumentResponse](t, do(t, h, http.MethodGet, "/api/documents/"+up.DocumentID, nil))
	if got.Text != "Привет, мир" {
		t.Errorf("text = %q", got.Text)
	}

	rr := do(t, h, http.MethodDelete, "/api/documents/"+up.DocumentID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if del := decode[DeleteResponse](t, rr); del.DocumentID != up.DocumentID {
		t.Errorf("delete id = %q", del.DocumentID)
	}

	rr = do(t, h, http.MethodDelete, "/api/documents/"+up.DocumentID, nil)
	expectError(t, rr, http.StatusNotFound, CodeDocumentNotFound)

	rr = do(t, h, http.MethodGet, "/api/documents/"+up.DocumentID, nil)
	expectError(t, rr, http.StatusNotFound, CodeDocumentNotFound)

	list = decode[DocumentListResponse](t, do(t, h, http.MethodGet, "/api/documents", nil))
	if list.TotalCount != 0 || list.Documents == nil {
		t.Errorf("expected empty non-null list, got %+v", list)
	}
}

func TestUpload_Multipart(t *testing.T) {
	h := newTestHandler(t)

	rr := uploadMultipart(t, h, "file", "notes.txt", append([]byte{0xEF, 0xBB, 0xBF}, "hello world"...))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	up := decode[UploadResponse](t, rr)
	if up.Filename != "notes.txt" {
		t.Errorf("filename = %q", up.Filename)
	}
	if up.Size != len("hello world") {
		t.Errorf("size = %d, BOM must be stripped", up.Size)
	}
}

func TestUpload_MultipartMissingFile(t *testing.T) {
	rr := uploadMultipart(t, newTestHandler(t), "attachment", "notes.txt", []byte("text"))
	expectError(t, rr, http.StatusBadRequest, CodeBadRequest)
}

func TestUpload_MultipartNonText(t *testing.T) {
	h := newTestHandler(t)

	for name, content := range map[string][]byte{
		"binary":       {0x89, 'P', 'N', 'G', 0x00, 0x01},
		"invalid utf8": {0xff, 0xfe, 0xfd},
	} {
		t.Run(name, func(t *testing.T) {
			rr := uploadMultipart(t, h, "file", "blob.bin", content)
			expectError(t, rr, http.StatusBadRequest, CodeValidationFailed)
		})
	}
}

func TestUpload_Rejections(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", " \n\t "},
		{"binary", "abc\x00def"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/documents/upload", UploadRequest{Text: tc.text})
			expectError(t, rr, http.StatusBadRequest, CodeValidationFailed)
		})
	}
}

func TestUpload_TooLarge(t *testing.T) {
	h := newTestRouter(t, newServices(), Info{MaxUploadBytes: 64}, RouterConfig{})

	rr := do(t, h, http.MethodPost, "/api/documents/upload",
		UploadRequest{Filename: "big.txt", Text: strings.Repeat("word ", 100)})
	expectError(t, rr, http.StatusRequestEntityTooLarge, CodePayloadTooLarge)
}

func TestCheck(t *testing.T) {
	h := newTestHandler(t)

	subject := upload(t, h, "subject.txt", "the cat sat on the mat")
	other := upload(t, h, "other.txt", "quantum chromodynamics describes gluons")
	dup := upload(t, h, "copy.txt", "the cat sat on the mat")

	rr := do(t, h, http.MethodPost, "/api/documents/"+subject.DocumentID+"/check", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decode[CheckResponse](t, rr)

	if resp.DocumentID != subject.DocumentID || resp.Filename != "subject.txt" {
		t.Errorf("unexpected subject %+v", resp)
	}
	if resp.TotalCompared != 2 || len(resp.Results) != 2 {
		t.Fatalf("compared = %d, want 2", resp.TotalCompared)
	}
	if resp.Results[0].DocumentID != other.DocumentID || resp.Results[1].DocumentID != dup.DocumentID {
		t.Error("default order must follow insertion order")
	}
	if resp.Results[1].SimilarityScore != 1 || !resp.Results[1].IsPlagiarized {
		t.Errorf("duplicate result = %+v", resp.Results[1])
	}
	if resp.PlagiarismCount != 1 {
		t.Errorf("plagiarism_count = %d, want 1", resp.PlagiarismCount)
	}
	want := (resp.Results[0].SimilarityScore + resp.Results[1].SimilarityScore) / 2
	if resp.AverageSimilarity != want {
		t.Errorf("average = %v, want %v", resp.AverageSimilarity, want)
	}

	sorted := decode[CheckResponse](t,
		do(t, h, http.MethodPost, "/api/documents/"+subject.DocumentID+"/check?sort=similarity", nil))
	if sorted.Results[0].DocumentID != dup.DocumentID {
		t.Error("sort=similarity must put the duplicate first")
	}
	if sorted.AverageSimilarity != resp.AverageSimilarity {
		t.Error("sorting must not change aggregates")
	}
}

func TestCheck_SingleDocument(t *testing.T) {
	h := newTestHandler(t)
	only := upload(t, h, "only.txt", "lonely text")

	resp := decode[CheckResponse](t, do(t, h, http.MethodPost, "/api/documents/"+only.DocumentID+"/check", nil))
	if resp.TotalCompared != 0 || resp.Results == nil {
		t.Errorf("expected empty results, got %+v", resp)
	}
	if resp.AverageSimilarity != 0 || resp.PlagiarismCount != 0 {
		t.Errorf("expected zero aggregates, got %+v", resp)
	}
}

func TestCheck_Errors(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/api/documents/missing/check", nil)
	expectError(t, rr, http.StatusNotFound, CodeDocumentNotFound)

	rr = do(t, h, http.MethodPost, "/api/documents/missing/check?sort=random", nil)
	expectError(t, rr, http.StatusBadRequest, CodeBadRequest)
}

func TestCheck_InternalError(t *testing.T) {
	svc := newServices()
	svc.Checker = &mockChecker{checkFn: func(context.Context, string) (domcheck.Report, error) {
		return domcheck.Report{}, errors.New("list documents: boom")
	}}
	h := newTestRouter(t, svc, Info{}, RouterConfig{})

	rr := do(t, h, http.MethodPost, "/api/documents/x/check", nil)
	expectError(t, rr, http.StatusInternalServerError, CodeInternalError)
}

func TestCheck_EmbeddingMismatch(t *testing.T) {
	svc := newServices()
	svc.Checker = &mockChecker{checkFn: func(context.Context, string) (domcheck.Report, error) {
		return domcheck.Report{}, fmt.Errorf("check: %w", domain.NewEmbeddingMismatch("old", 512, 256))
	}}
	h := newTestRouter(t, svc, Info{}, RouterConfig{})

	rr := do(t, h, http.MethodPost, "/api/documents/x/check", nil)
	resp := expectError(t, rr, http.StatusConflict, CodeEmbeddingMismatch)
	if !strings.Contains(resp.Message, "document old has 512 dimensions, want 256") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestListDocuments_Error(t *testing.T) {
	svc := newServices()
	svc.Documents = &mockDocuments{listFn: func(context.Context) ([]domdoc.Document, error) {
		return nil, errors.New("db down")
	}}
	h := newTestRouter(t, svc, Info{}, RouterConfig{})

	rr := do(t, h, http.MethodGet, "/api/documents", nil)
	resp := expectError(t, rr, http.StatusInternalServerError, CodeInternalError)
	if strings.Contains(resp.Message, "db down") {
		t.Error("internal details must not leak")
	}
}

const summaryText = "Plagiarism detection compares documents by meaning. " +
	"Each text is turned into a vector of features. " +
	"Cosine similarity measures how close two vectors are. " +
	"Scores above the threshold are flagged for review."

func intPtr(v int) *int { return &v }

func TestSummarize(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/api/summarize", SummarizeRequest{Text: summaryText})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	resp := decode[SummaryResponse](t, rr)
	if resp.SummaryLength > 150 || resp.SummaryLength == 0 {
		t.Errorf("summary_length = %d, want (0, 150]", resp.SummaryLength)
	}
	if resp.OriginalLength != len(summaryText) {
		t.Errorf("original_length = %d, want %d", resp.OriginalLength, len(summaryText))
	}
	if resp.Method != "extractive" {
		t.Errorf("method = %q", resp.Method)
	}
	if resp.CompressionRatio <= 0 || resp.CompressionRatio > 1 {
		t.Errorf("compression_ratio = %v", resp.CompressionRatio)
	}

	rr = do(t, h, http.MethodPost, "/api/summarize",
		SummarizeRequest{Text: summaryText, MinLength: intPtr(10), MaxLength: intPtr(60)})
	if got := decode[SummaryResponse](t, rr); got.SummaryLength > 60 {
		t.Errorf("summary_length = %d, want <= 60", got.SummaryLength)
	}
}

func TestSummarize_Validation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name  string
		body  SummarizeRequest
		field string
	}{
		{"short text", SummarizeRequest{Text: "Too short."}, "text"},
		{"zero max", SummarizeRequest{Text: summaryText, MaxLength: intPtr(0)}, "max_length"},
		{"negative min", SummarizeRequest{Text: summaryText, MinLength: intPtr(-1)}, "min_length"},
		{"min above max", SummarizeRequest{Text: summaryText, MinLength: intPtr(100), MaxLength: intPtr(50)}, "min_length"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/summarize", tc.body)
			resp := expectError(t, rr, http.StatusBadRequest, CodeValidationFailed)
			if resp.Field != tc.field {
				t.Errorf("field = %q, want %q", resp.Field, tc.field)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	upload(t, h, "a.txt", "some text")

	rr := do(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["storage"] != "ok" {
		t.Errorf("unexpected health %+v", resp)
	}
	if resp.Documents != 1 {
		t.Errorf("documents_loaded = %d, want 1", resp.Documents)
	}
}

func TestHealth_Statuses(t *testing.T) {
	tests := []struct {
		status healthuc.Status
		want   int
	}{
		{healthuc.Healthy, http.StatusOK},
		{healthuc.Degraded, http.StatusOK},
		{healthuc.Unhealthy, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			svc := newServices()
			svc.Health = &mockHealth{report: healthuc.Report{
				Status: tc.status,
				Checks: map[string]healthuc.CheckResult{"storage": healthuc.CheckError},
			}}
			rr := do(t, newTestRouter(t, svc, Info{}, RouterConfig{}), http.MethodGet, "/health", nil)
			if rr.Code != tc.want {
				t.Errorf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	h := newTestHandler(t)

	expectError(t, do(t, h, http.MethodGet, "/api/unknown", nil), http.StatusNotFound, CodeNotFound)
	expectError(t, do(t, h, http.MethodPut, "/api/documents/abc", nil), http.StatusMethodNotAllowed, CodeMethodNotAllowed)
}

func TestRouter_Auth(t *testing.T) {
	h := newTestRouter(t, newServices(), Info{}, RouterConfig{APIKeys: []string{"secret"}})

	expectError(t, do(t, h, http.MethodGet, "/api/documents", nil), http.StatusUnauthorized, CodeUnauthorized)

	if rr := do(t, h, http.MethodGet, "/health", nil); rr.Code != http.StatusOK {
		t.Errorf("/health must be exempt, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("authorized list: got %d", rr.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, newServices(), Info{}, RouterConfig{
		APIKeys:        []string{"secret"},
		AllowedOrigins: []string{"https://app.example.com"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/similarity/compare", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
