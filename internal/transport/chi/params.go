package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Порядок результатов проверки.
const (
	SortCorpus     = "corpus"
	SortSimilarity = "similarity"
)

// paramError is a malformed path or query parameter.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v", e.name, e.err)
}

func (e *paramError) Unwrap() error { return e.err }

func documentIDParam(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "document_id", chi.URLParam(r, "document_id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", &paramError{name: "document_id", err: err}
	}
	if id == "" {
		return "", &paramError{name: "document_id", err: fmt.Errorf("must not be empty")}
	}
	return id, nil
}

// sortParam reads the optional ?sort= of a check. Defaults to corpus order.
func sortParam(r *http.Request) (string, error) {
	var sort *string
	if err := runtime.BindQueryParameter("form", true, false, "sort", r.URL.Query(), &sort); err != nil {
		return "", &paramError{name: "sort", err: err}
	}
	if sort == nil || *sort == "" {
		return SortCorpus, nil
	}
	switch *sort {
	case SortCorpus, SortSimilarity:
		return *sort, nil
	default:
		return "", &paramError{name: "sort", err: fmt.Errorf("must be %q or %q", SortCorpus, SortSimilarity)}
	}
}
