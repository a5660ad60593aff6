package mcp

import (
	"context"

	"github.com/hermes-rag/hermes/internal/domain"
	"github.com/hermes-rag/hermes/internal/usecase/ingest"
	"github.com/hermes-rag/hermes/internal/usecase/search"
)

// SearchService runs retrieval requests.
type SearchService interface {
	Search(ctx context.Context, req search.Request) (*domain.SearchResponse, error)
}

// IngestService runs ingestion requests.
type IngestService interface {
	Ingest(ctx context.Context, req ingest.Request) (*domain.IngestResult, error)
}

// DocumentStore reads and deletes stored documents.
type DocumentStore interface {
	Get(ctx context.Context, id string) (domain.DocumentInfo, error)
	List(ctx context.Context, limit, offset int, docType string) (domain.DocumentPage, error)
	Delete(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// ConfigInfo is the non-secret configuration summary exposed as the
// rag://config resource.
type ConfigInfo struct {
	EmbeddingModel      string  `json:"embedding_model"`
	EmbeddingDimensions int     `json:"embedding_dimensions"`
	RerankerModel       string  `json:"reranker_model,omitempty"`
	ChunkSize           int     `json:"chunk_size_words"`
	ChunkOverlap        int     `json:"chunk_overlap_words"`
	CandidateTopK       int     `json:"candidate_top_k"`
	ResultTopK          int     `json:"result_top_k"`
	VectorWeight        float64 `json:"vector_weight"`
	KeywordWeight       float64 `json:"keyword_weight"`
	RRFK                int     `json:"rrf_k"`
	CacheEnabled        bool    `json:"cache_enabled"`
	CacheTTLSec         int     `json:"cache_ttl_sec"`
}
