package ingest

import (
	"context"

	"github.com/hermes-rag/hermes/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	insertFn       func(ctx context.Context, doc *domain.Document) (string, error)
	insertChunksFn func(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	insertCalls       int
	insertChunksCalls int
}

func (m *mockRepo) Insert(ctx context.Context, doc *domain.Document) (string, error) {
	m.insertCalls++
	if m.insertFn != nil {
		return m.insertFn(ctx, doc)
	}
	return "doc-1", nil
}

func (m *mockRepo) InsertChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	m.insertChunksCalls++
	if m.insertChunksFn != nil {
		return m.insertChunksFn(ctx, doc, chunks)
	}
	return nil
}

// mockEmbedder implements Embedder for tests. Unless batchFn is set, it
// returns one distinct vector per input text.
type mockEmbedder struct {
	batchFn func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	if m.batchFn != nil {
		return m.batchFn(ctx, texts)
	}
	out := domain.BatchEmbeddingResult{
		Embeddings:  make([][]float32, len(texts)),
		TotalTokens: len(texts) * 5,
	}
	for i := range texts {
		out.Embeddings[i] = []float32{float32(i), 0.5}
	}
	return out, nil
}
