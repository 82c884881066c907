package document

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kailas-cloud/plagcheck/internal/domain"
)

// DefaultFilename is used when a document is added without a name.
const DefaultFilename = "untitled"

// Document is the stored document aggregate (immutable value object).
// The embedding is computed once from text and never changes afterwards.
type Document struct {
	id         string
	filename   string
	text       string
	size       int
	embedding  []float32
	uploadedAt time.Time
}

// New validates input and creates a Document with a fresh UUIDv4.
// Text must be valid UTF-8, free of NUL bytes, and non-empty after trimming.
func New(filename, text string, embedding []float32, uploadedAt time.Time) (Document, error) {
	if err := ValidateText("text", text); err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(filename) == "" {
		filename = DefaultFilename
	}

	return Document{
		id:         uuid.NewString(),
		filename:   filename,
		text:       text,
		size:       utf8.RuneCountInString(text),
		embedding:  cloneVector(embedding),
		uploadedAt: uploadedAt.UTC(),
	}, nil
}

// ValidateText checks that text can be stored and compared.
func ValidateText(field, text string) error {
	if !utf8.ValidString(text) {
		return domain.NewInvalidInput(field, "must be valid UTF-8 text")
	}
	if strings.ContainsRune(text, 0) {
		return domain.NewInvalidInput(field, "must not contain binary data")
	}
	if strings.TrimSpace(text) == "" {
		return domain.NewInvalidInput(field, "must not be empty")
	}
	return nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, filename, text string, size int, embedding []float32, uploadedAt time.Time) Document {
	return Document{
		id:         id,
		filename:   filename,
		text:       text,
		size:       size,
		embedding:  embedding,
		uploadedAt: uploadedAt,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Filename returns the name the document was uploaded with.
func (d *Document) Filename() string { return d.filename }

// Text returns the document text.
func (d *Document) Text() string { return d.text }

// Size returns the character count of the text.
func (d *Document) Size() int { return d.size }

// Embedding returns the cached embedding vector.
func (d *Document) Embedding() []float32 { return d.embedding }

// UploadedAt returns the creation time in UTC.
func (d *Document) UploadedAt() time.Time { return d.uploadedAt }

func cloneVector(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
