package domain

// Candidate is a chunk under consideration during one retrieval call. It is
// never persisted; score fields are filled in as the pipeline progresses.
type Candidate struct {
	ChunkID       string  `json:"chunk_id"`
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Text          string  `json:"chunk_text"`
	EnrichedText  string  `json:"enriched_text,omitempty"`
	Score         float64 `json:"score"`                  // signal-native score (similarity or BM25)
	RRFScore      float64 `json:"rrf_score,omitempty"`    // fused score, set by fusion
	RerankScore   float64 `json:"rerank_score,omitempty"` // cross-encoder score, set by reranking
}

// ScoreText returns the text the reranker should score: enriched when present,
// raw otherwise.
func (c *Candidate) ScoreText() string {
	if c.EnrichedText != "" {
		return c.EnrichedText
	}
	return c.Text
}

// SearchResponse is the canonical result of one retrieval call. The transport
// layer renders it; the core never formats.
type SearchResponse struct {
	Query           string      `json:"query"`
	Results         []Candidate `json:"results"`
	TotalCandidates int         `json:"total_candidates"`
	ElapsedMS       int64       `json:"elapsed_ms"`
	Cached          bool        `json:"cached"`
}

// IngestResult reports one completed ingestion.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
	ElapsedMS  int64  `json:"elapsed_ms"`
}
