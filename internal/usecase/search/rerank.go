package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/hermes-rag/hermes/internal/domain"
)

// rerank scores each candidate against the query with the cross-encoder
// and returns the top limit candidates by that score. The enriched text
// is preferred over the raw text for scoring. Ties keep the fused order.
func rerank(
	ctx context.Context, rr Reranker, query string, candidates []domain.Candidate, limit int,
) ([]domain.Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	texts := make([]string, len(candidates))
	for i := range candidates {
		texts[i] = candidates[i].ScoreText()
	}

	scores, err := rr.ScorePairs(ctx, query, texts)
	if err != nil {
		return nil, fmt.Errorf("score pairs: %w", err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("reranker returned %d scores for %d candidates", len(scores), len(candidates))
	}

	out := make([]domain.Candidate, len(candidates))
	copy(out, candidates)
	for i := range out {
		out[i].RerankScore = scores[i]
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RerankScore > out[j].RerankScore
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
