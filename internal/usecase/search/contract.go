package search

import (
	"context"

	"github.com/hermes-rag/hermes/internal/domain"
)

// Repository defines the candidate sources for hybrid retrieval.
type Repository interface {
	VectorSearch(ctx context.Context, vector []float32, topK int) ([]domain.Candidate, error)
	KeywordSearch(ctx context.Context, query string, topK int) ([]domain.Candidate, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Reranker scores (query, text) pairs with a cross-encoder.
type Reranker interface {
	ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error)
}

// Cache short-circuits repeated queries. Both operations are best-effort.
type Cache interface {
	Get(ctx context.Context, query string) (*domain.SearchResponse, bool)
	Put(ctx context.Context, query string, resp *domain.SearchResponse)
}

// Request is one retrieval call.
type Request struct {
	Query       string
	Limit       int // 0 means the configured default
	UseCache    bool
	UseReranker bool
}

// Params are the tunables of the retrieval pipeline, taken from config.
type Params struct {
	CandidateTopK int
	ResultTopK    int
	VectorWeight  float64
	KeywordWeight float64
	RRFK          int
}
