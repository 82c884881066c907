package document

import (
	"context"
	"testing"
	"time"

	domdoc "github.com/kailas-cloud/plagcheck/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, key string) error
	incrFn         func(ctx context.Context, key string) (int64, error)
	zrangeFn       func(ctx context.Context, key string) ([]string, error)
	zremFn         func(ctx context.Context, key, member string) (bool, error)
	zcardFn        func(ctx context.Context, key string) (int64, error)
	hsetZAddFn     func(
		ctx context.Context, key string, fields map[string]string, zkey string, score float64, member string,
	) error
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	return 1, nil
}

func (m *mockStore) ZRange(ctx context.Context, key string) ([]string, error) {
	if m.zrangeFn != nil {
		return m.zrangeFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) ZRem(ctx context.Context, key, member string) (bool, error) {
	if m.zremFn != nil {
		return m.zremFn(ctx, key, member)
	}
	return false, nil
}

func (m *mockStore) ZCard(ctx context.Context, key string) (int64, error) {
	if m.zcardFn != nil {
		return m.zcardFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) HSetZAdd(
	ctx context.Context, key string, fields map[string]string, zkey string, score float64, member string,
) error {
	if m.hsetZAddFn != nil {
		return m.hsetZAddFn(ctx, key, fields, zkey, score, member)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "")
	return repo, ms
}

var testUploadedAt = time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)

func testDocument(t *testing.T, id, text string) domdoc.Document {
	t.Helper()
	return domdoc.Reconstruct(id, id+".txt", text, len([]rune(text)), []float32{0.6, 0.8, 0}, testUploadedAt)
}
