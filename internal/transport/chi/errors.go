package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	"github.com/kailas-cloud/plagcheck/internal/logger"
)

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeDocumentNotFound       ErrorCode = "document_not_found"
	CodeNotFound               ErrorCode = "not_found"
	CodeMethodNotAllowed       ErrorCode = "method_not_allowed"
	CodePayloadTooLarge        ErrorCode = "payload_too_large"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeEmbeddingMismatch      ErrorCode = "embedding_dimension_mismatch"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		invalidInputHandler,
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(domain.ErrEmbeddingMismatch, http.StatusConflict, CodeEmbeddingMismatch),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
// Typed domain errors carry only caller-supplied context, so their text is safe.
func safeDomainMessage(err error) string {
	var inv *domain.InvalidInputError
	if errors.As(err, &inv) {
		return inv.Error()
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var mm *domain.EmbeddingMismatchError
	if errors.As(err, &mm) {
		return mm.Error()
	}
	for _, s := range []error{
		domain.ErrDocumentNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrEmbeddingProviderError,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidInputHandler answers 400 and names the offending field.
func invalidInputHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	resp := ErrorResponse{Code: CodeValidationFailed, Message: msg}
	var inv *domain.InvalidInputError
	if errors.As(err, &inv) {
		resp.Field = inv.Field
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// isBodyTooLarge reports whether err came from http.MaxBytesReader.
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// multipart parsing may flatten the error into text.
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
