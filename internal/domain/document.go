package domain

import "time"

// KeyPrefix namespaces every Redis key written by hermes.
const KeyPrefix = "hermes:"

// MaxChunkTextLen caps stored chunk text (raw and enriched), in characters.
const MaxChunkTextLen = 4000

// Document is a logical unit of ingested text. It is created once during
// ingestion and never mutated afterwards.
type Document struct {
	ID        string
	Title     string
	Source    string
	DocType   string
	Metadata  map[string]string
	CreatedAt time.Time
}

// Chunk is a bounded span of a document's text, the unit of embedding and
// retrieval. Indices for one document form a contiguous range starting at 0.
type Chunk struct {
	DocumentID   string
	Index        int
	Text         string // raw segment text, capped at MaxChunkTextLen
	EnrichedText string // context-prefixed text, capped at MaxChunkTextLen
	TokenCount   int    // word-count estimate of the raw text
	Embedding    []float32
}

// DocumentInfo is a document plus its stored chunk and token totals,
// as returned by lookups.
type DocumentInfo struct {
	Document
	ChunkCount int
	TokenCount int
}

// DocumentPage is one page of a document listing.
type DocumentPage struct {
	Items   []DocumentInfo
	Total   int
	Offset  int
	HasMore bool
}

// Stats summarizes the state of the knowledge base.
type Stats struct {
	Documents   int
	Chunks      int
	TotalTokens int64
	ByType      map[string]int
}
