package document

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/domain"
	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
	"github.com/kailas-cloud/plagcheck/internal/logger"
)

// DefaultKeyPrefix namespaces every key the repository writes.
const DefaultKeyPrefix = "plagcheck:"

// store is the consumer interface for documents (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	ZRange(ctx context.Context, key string) ([]string, error)
	ZRem(ctx context.Context, key, member string) (bool, error)
	ZCard(ctx context.Context, key string) (int64, error)
	HSetZAdd(ctx context.Context, key string, fields map[string]string, zkey string, score float64, member string) error
}

// Repo stores documents in Redis/Valkey: one hash per document plus a sorted
// set of ids scored by an insertion counter.
type Repo struct {
	store  store
	prefix string
}

// New creates a document repository. An empty prefix falls back to DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Save writes the document and appends its id to the insertion-order index.
func (r *Repo) Save(ctx context.Context, doc domdoc.Document) error {
	seq, err := r.store.Incr(ctx, r.seqKey())
	if err != nil {
		return fmt.Errorf("incr %s: %w", r.seqKey(), err)
	}

	key := r.docKey(doc.ID())
	if err := r.store.HSetZAdd(ctx, key, buildHashFields(doc, seq), r.indexKey(), float64(seq), doc.ID()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	key := r.docKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domdoc.Document{}, domain.NewDocumentNotFound(id)
	}
	return parseHashFields(id, m)
}

// List returns all documents in insertion order. Index entries without a
// hash are skipped and logged.
func (r *Repo) List(ctx context.Context) ([]domdoc.Document, error) {
	ids, err := r.store.ZRange(ctx, r.indexKey())
	if err != nil {
		return nil, fmt.Errorf("zrange %s: %w", r.indexKey(), err)
	}
	if len(ids) == 0 {
		return []domdoc.Document{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	docs := make([]domdoc.Document, 0, len(ids))
	var dangling []string
	for i, m := range hashes {
		// HSET и ZADD идут одним пайплайном, но не транзакцией: если HSET упал,
		// а ZADD прошёл, в индексе остаётся id без хэша.
		if len(m) == 0 {
			dangling = append(dangling, ids[i])
			continue
		}
		doc, err := parseHashFields(ids[i], m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(dangling) > 0 {
		logger.FromContext(ctx).Warn("Index entries without document hash skipped",
			zap.Strings("ids", dangling),
			zap.String("index", r.indexKey()),
		)
	}
	return docs, nil
}

// Delete removes a document. Returns a not-found error if it was never indexed.
func (r *Repo) Delete(ctx context.Context, id string) error {
	removed, err := r.store.ZRem(ctx, r.indexKey(), id)
	if err != nil {
		return fmt.Errorf("zrem %s: %w", r.indexKey(), err)
	}
	if !removed {
		return domain.NewDocumentNotFound(id)
	}

	key := r.docKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of index entries. It can exceed len(List) while
// dangling entries from a partial Save remain.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.ZCard(ctx, r.indexKey())
	if err != nil {
		return 0, fmt.Errorf("zcard %s: %w", r.indexKey(), err)
	}
	return int(n), nil
}

func (r *Repo) docKey(id string) string { return r.prefix + "doc:" + id }
func (r *Repo) indexKey() string        { return r.prefix + "docs" }
func (r *Repo) seqKey() string          { return r.prefix + "docs:seq" }
