package document

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/plagcheck/internal/db"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
)

// Hash field names.
const (
	fieldFilename   = "filename"
	fieldText       = "text"
	fieldSize       = "size"
	fieldEmbedding  = "embedding"
	fieldUploadedAt = "uploaded_at"
	fieldSeq        = "seq"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc domdoc.Document, seq int64) map[string]string {
	return map[string]string{
		fieldFilename:   doc.Filename(),
		fieldText:       doc.Text(),
		fieldSize:       strconv.Itoa(doc.Size()),
		fieldEmbedding:  string(db.EncodeVector(doc.Embedding())),
		fieldUploadedAt: doc.UploadedAt().UTC().Format(time.RFC3339Nano),
		fieldSeq:        strconv.FormatInt(seq, 10),
	}
}

// parseHashFields converts a flat hash map back into a domain Document.
func parseHashFields(id string, m map[string]string) (domdoc.Document, error) {
	size, err := strconv.Atoi(m[fieldSize])
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %s: parse size: %w", id, err)
	}
	vec, err := db.DecodeVector([]byte(m[fieldEmbedding]))
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %s: %w", id, err)
	}
	uploadedAt, err := time.Parse(time.RFC3339Nano, m[fieldUploadedAt])
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %s: parse uploaded_at: %w", id, err)
	}
	return domdoc.Reconstruct(id, m[fieldFilename], m[fieldText], size, vec, uploadedAt), nil
}
