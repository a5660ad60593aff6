package search

import (
	"sort"

	"github.com/hermes-rag/hermes/internal/domain"
)

// fuseRRF merges vector and keyword candidates via weighted Reciprocal
// Rank Fusion. A candidate at 0-based rank r in a list with weight w
// contributes w/(k+r+1); its fused score is the sum over the lists it
// appears in. The two signals' raw scores are never compared directly.
//
// Identity is the chunk ID. Metadata comes from the first occurrence,
// with the vector list visited first. The output covers the union of
// both inputs without truncation, sorted by fused score descending;
// ties keep first-seen order.
func fuseRRF(vector, keyword []domain.Candidate, p Params) []domain.Candidate {
	k := float64(p.RRFK)

	merged := make(map[string]int, len(vector)+len(keyword))
	fused := make([]domain.Candidate, 0, len(vector)+len(keyword))

	for rank, c := range vector {
		c.RRFScore = p.VectorWeight / (k + float64(rank) + 1)
		merged[c.ChunkID] = len(fused)
		fused = append(fused, c)
	}

	for rank, c := range keyword {
		s := p.KeywordWeight / (k + float64(rank) + 1)
		if i, ok := merged[c.ChunkID]; ok {
			fused[i].RRFScore += s
			continue
		}
		c.RRFScore = s
		merged[c.ChunkID] = len(fused)
		fused = append(fused, c)
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].RRFScore > fused[j].RRFScore
	})

	return fused
}
