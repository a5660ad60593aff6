package document

import (
	"context"
	"testing"

	"github.com/hermes-rag/hermes/internal/db"
	"github.com/hermes-rag/hermes/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, keys ...string) (int64, error)
	existsFn      func(ctx context.Context, key string) (bool, error)
	scanFn        func(ctx context.Context, pattern string) ([]string, error)
	searchCountFn func(ctx context.Context, index, query string) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) (int64, error) {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return int64(len(keys)), nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

// mockIndexManager stubs FT index lifecycle operations.
type mockIndexManager struct {
	createFn func(ctx context.Context, def *db.IndexDefinition) error
	existsFn func(ctx context.Context, name string) (bool, error)

	createCalls int
	existsCalls int
}

func (m *mockIndexManager) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, def)
	}
	return nil
}

func (m *mockIndexManager) IndexExists(ctx context.Context, name string) (bool, error) {
	m.existsCalls++
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testDocument(t *testing.T) *domain.Document {
	t.Helper()
	return &domain.Document{
		Title:    "Install Guide",
		Source:   "docs/install.md",
		DocType:  "manual",
		Metadata: map[string]string{"lang": "en"},
	}
}

func testChunks(t *testing.T, docID string, n int) []domain.Chunk {
	t.Helper()
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			DocumentID:   docID,
			Index:        i,
			Text:         "chunk text",
			EnrichedText: "[Document: Install Guide | Type: manual | Segment 1] chunk text",
			TokenCount:   2,
			Embedding:    []float32{0.1, 0.2},
		}
	}
	return chunks
}
