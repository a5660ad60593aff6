// Package search runs vector and keyword searches over the chunk index
// and maps hits into retrieval candidates.
package search

import (
	"context"
	"fmt"

	"github.com/hermes-rag/hermes/internal/db"
	"github.com/hermes-rag/hermes/internal/domain"
	"github.com/hermes-rag/hermes/internal/repository/document"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// returnFields is what each search asks back from the chunk hash. The
// vector itself is never returned, only its score.
var returnFields = []string{
	document.FieldDocumentID,
	document.FieldDocTitle,
	document.FieldText,
	document.FieldEnrichedText,
	"__vector_score",
}

// Repo implements the candidate sources of the retrieval pipeline.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// VectorSearch returns the topK nearest chunks by cosine similarity.
// Scores are similarities in [0,1].
func (r *Repo) VectorSearch(ctx context.Context, vector []float32, topK int) ([]domain.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    document.ChunkIndexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return parseCandidates(sr), nil
}

// KeywordSearch returns the topK chunks by BM25 relevance over raw text.
func (r *Repo) KeywordSearch(ctx context.Context, query string, topK int) ([]domain.Candidate, error) {
	q := &db.TextQuery{
		IndexName:    document.ChunkIndexName,
		Query:        query,
		TopK:         topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	return parseCandidates(sr), nil
}

func parseCandidates(sr *db.SearchResult) []domain.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	out := make([]domain.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		out = append(out, domain.Candidate{
			ChunkID:       document.ChunkIDFromKey(entry.Key),
			DocumentID:    entry.Fields[document.FieldDocumentID],
			DocumentTitle: entry.Fields[document.FieldDocTitle],
			Text:          entry.Fields[document.FieldText],
			EnrichedText:  entry.Fields[document.FieldEnrichedText],
			Score:         entry.Score,
		})
	}
	return out
}
