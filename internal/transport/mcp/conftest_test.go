package mcp

import (
	"context"

	"go.uber.org/zap"

	"github.com/hermes-rag/hermes/internal/domain"
	"github.com/hermes-rag/hermes/internal/usecase/ingest"
	"github.com/hermes-rag/hermes/internal/usecase/search"
)

// mockSearch implements SearchService for tests.
type mockSearch struct {
	searchFn func(ctx context.Context, req search.Request) (*domain.SearchResponse, error)
	lastReq  search.Request
}

func (m *mockSearch) Search(ctx context.Context, req search.Request) (*domain.SearchResponse, error) {
	m.lastReq = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &domain.SearchResponse{Query: req.Query}, nil
}

// mockIngest implements IngestService for tests.
type mockIngest struct {
	ingestFn func(ctx context.Context, req ingest.Request) (*domain.IngestResult, error)
	lastReq  ingest.Request
}

func (m *mockIngest) Ingest(ctx context.Context, req ingest.Request) (*domain.IngestResult, error) {
	m.lastReq = req
	if m.ingestFn != nil {
		return m.ingestFn(ctx, req)
	}
	return &domain.IngestResult{DocumentID: "doc-1", Title: req.Title}, nil
}

// mockDocs implements DocumentStore for tests.
type mockDocs struct {
	getFn    func(ctx context.Context, id string) (domain.DocumentInfo, error)
	listFn   func(ctx context.Context, limit, offset int, docType string) (domain.DocumentPage, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	statsFn  func(ctx context.Context) (domain.Stats, error)
}

func (m *mockDocs) Get(ctx context.Context, id string) (domain.DocumentInfo, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.DocumentInfo{}, domain.ErrDocumentNotFound
}

func (m *mockDocs) List(ctx context.Context, limit, offset int, docType string) (domain.DocumentPage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset, docType)
	}
	return domain.DocumentPage{}, nil
}

func (m *mockDocs) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

func (m *mockDocs) Stats(ctx context.Context) (domain.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return domain.Stats{}, nil
}

func newTestServer() (*Server, *mockSearch, *mockIngest, *mockDocs) {
	srch := &mockSearch{}
	ing := &mockIngest{}
	docs := &mockDocs{}
	cfg := ConfigInfo{
		EmbeddingModel:      "test-embed",
		EmbeddingDimensions: 1024,
		ChunkSize:           512,
		ChunkOverlap:        64,
		CandidateTopK:       20,
		ResultTopK:          5,
		VectorWeight:        0.7,
		KeywordWeight:       0.3,
		RRFK:                60,
		CacheEnabled:        true,
		CacheTTLSec:         3600,
	}
	return New(srch, ing, docs, cfg, zap.NewNop()), srch, ing, docs
}
