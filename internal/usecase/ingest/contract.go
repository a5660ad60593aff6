package ingest

import (
	"context"

	"github.com/hermes-rag/hermes/internal/domain"
)

// Repository persists documents and their chunks.
type Repository interface {
	Insert(ctx context.Context, doc *domain.Document) (string, error)
	InsertChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error
}

// Embedder vectorizes a batch of texts in one call.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// Splitter divides raw text into bounded segments.
type Splitter interface {
	Split(text string) []string
}

// Request describes one document to ingest.
type Request struct {
	Title    string
	Content  string
	Source   string
	DocType  string
	Metadata map[string]string
}
