package search

import (
	"context"
	"testing"

	"github.com/hermes-rag/hermes/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	vectorFn  func(ctx context.Context, vector []float32, topK int) ([]domain.Candidate, error)
	keywordFn func(ctx context.Context, query string, topK int) ([]domain.Candidate, error)

	vectorCalls  int
	keywordCalls int
}

func (m *mockRepo) VectorSearch(ctx context.Context, vector []float32, topK int) ([]domain.Candidate, error) {
	m.vectorCalls++
	if m.vectorFn != nil {
		return m.vectorFn(ctx, vector, topK)
	}
	return nil, nil
}

func (m *mockRepo) KeywordSearch(ctx context.Context, query string, topK int) ([]domain.Candidate, error) {
	m.keywordCalls++
	if m.keywordFn != nil {
		return m.keywordFn(ctx, query, topK)
	}
	return nil, nil
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

// mockReranker implements Reranker for tests.
type mockReranker struct {
	scoreFn func(ctx context.Context, query string, texts []string) ([]float64, error)
	calls   int
}

func (m *mockReranker) ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error) {
	m.calls++
	if m.scoreFn != nil {
		return m.scoreFn(ctx, query, texts)
	}
	scores := make([]float64, len(texts))
	return scores, nil
}

// mockCache implements Cache for tests.
type mockCache struct {
	getFn func(ctx context.Context, query string) (*domain.SearchResponse, bool)
	putFn func(ctx context.Context, query string, resp *domain.SearchResponse)
}

func (m *mockCache) Get(ctx context.Context, query string) (*domain.SearchResponse, bool) {
	if m.getFn != nil {
		return m.getFn(ctx, query)
	}
	return nil, false
}

func (m *mockCache) Put(ctx context.Context, query string, resp *domain.SearchResponse) {
	if m.putFn != nil {
		m.putFn(ctx, query, resp)
	}
}

func testParams() Params {
	return Params{
		CandidateTopK: 20,
		ResultTopK:    5,
		VectorWeight:  0.7,
		KeywordWeight: 0.3,
		RRFK:          60,
	}
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockEmbedder, *mockReranker, *mockCache) {
	t.Helper()
	repo := &mockRepo{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	rr := &mockReranker{}
	cache := &mockCache{}
	svc := New(repo, emb, rr, cache, testParams())
	return svc, repo, emb, rr, cache
}

func cand(id string, score float64) domain.Candidate {
	return domain.Candidate{
		ChunkID:       id,
		DocumentID:    "doc",
		DocumentTitle: "Title",
		Text:          "text " + id,
		EnrichedText:  "[Document: Title | Segment 1] text " + id,
		Score:         score,
	}
}
