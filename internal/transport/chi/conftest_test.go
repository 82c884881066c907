package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	domcheck "github.com/kailas-cloud/plagcheck/internal/domain/check"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	domsim "github.com/kailas-cloud/plagcheck/internal/domain/similarity"
	repodoc "github.com/kailas-cloud/plagcheck/internal/repository/document"
	checkuc "github.com/kailas-cloud/plagcheck/internal/usecase/check"
	documentuc "github.com/kailas-cloud/plagcheck/internal/usecase/document"
	"github.com/kailas-cloud/plagcheck/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/plagcheck/internal/usecase/health"
	similarityuc "github.com/kailas-cloud/plagcheck/internal/usecase/similarity"
	"github.com/kailas-cloud/plagcheck/internal/usecase/summarize"
)

// --- mocks ---

type mockComparer struct {
	compareFn func(ctx context.Context, a, b string) (domsim.Result, error)
}

func (m *mockComparer) Compare(ctx context.Context, a, b string) (domsim.Result, error) {
	return m.compareFn(ctx, a, b)
}

type mockDocuments struct {
	addFn    func(ctx context.Context, filename, text string) (domdoc.Document, error)
	getFn    func(ctx context.Context, id string) (domdoc.Document, error)
	listFn   func(ctx context.Context) ([]domdoc.Document, error)
	removeFn func(ctx context.Context, id string) error
}

func (m *mockDocuments) Add(ctx context.Context, filename, text string) (domdoc.Document, error) {
	return m.addFn(ctx, filename, text)
}

func (m *mockDocuments) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocuments) List(ctx context.Context) ([]domdoc.Document, error) {
	return m.listFn(ctx)
}

func (m *mockDocuments) Remove(ctx context.Context, id string) error {
	return m.removeFn(ctx, id)
}

type mockChecker struct {
	checkFn func(ctx context.Context, id string) (domcheck.Report, error)
}

func (m *mockChecker) Check(ctx context.Context, id string) (domcheck.Report, error) {
	return m.checkFn(ctx, id)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

// newServices wires the real use cases over an in-memory corpus.
func newServices() Services {
	repo := repodoc.NewMemory()
	emb := embedding.NewHashingEmbedder(256)
	docs := documentuc.New(repo, emb)
	return Services{
		Similarity: similarityuc.New(emb, domsim.DefaultThreshold),
		Documents:  docs,
		Checker:    checkuc.New(docs, domsim.DefaultThreshold),
		Summarizer: summarize.New(summarize.Config{}),
		Health:     healthuc.New(repo, nil, repo),
	}
}

func newTestRouter(t *testing.T, svc Services, info Info, cfg RouterConfig) http.Handler {
	t.Helper()
	return NewRouter(NewServer(svc, info, zap.NewNop()), cfg, zap.NewNop())
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouter(t, newServices(), Info{Threshold: domsim.DefaultThreshold}, RouterConfig{})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			r = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code ErrorCode) ErrorResponse {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
	return resp
}

func upload(t *testing.T, h http.Handler, filename, text string) UploadResponse {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/documents/upload", UploadRequest{Filename: filename, Text: text})
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rr.Code, rr.Body.String())
	}
	return decode[UploadResponse](t, rr)
}

func uploadMultipart(t *testing.T, h http.Handler, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
