// Package ingest implements the ingestion pipeline: register the document,
// split its content, enrich every segment, embed the batch, and persist the
// chunk records in one insert.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hermes-rag/hermes/internal/chunker"
	"github.com/hermes-rag/hermes/internal/domain"
	"github.com/hermes-rag/hermes/internal/metrics"
)

// Service executes ingestion requests. Ingestion is all-or-nothing per
// document: any failing stage fails the whole call.
type Service struct {
	repo     Repository
	embed    Embedder
	splitter Splitter
}

// New creates an ingest service.
func New(repo Repository, embed Embedder, splitter Splitter) *Service {
	return &Service{repo: repo, embed: embed, splitter: splitter}
}

// Ingest stores one document and its embedded chunks.
//
// Empty or whitespace-only content is not an error: the document is still
// registered and the result reports zero chunks.
func (s *Service) Ingest(ctx context.Context, req Request) (*domain.IngestResult, error) {
	start := time.Now()

	doc := &domain.Document{
		Title:    strings.TrimSpace(req.Title),
		Source:   req.Source,
		DocType:  req.DocType,
		Metadata: req.Metadata,
	}
	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	doc.ID = id

	segments := s.splitter.Split(req.Content)
	if len(segments) == 0 {
		metrics.IngestDocumentsTotal.Inc()
		return &domain.IngestResult{
			DocumentID: id,
			Title:      doc.Title,
			ElapsedMS:  time.Since(start).Milliseconds(),
		}, nil
	}

	enriched := make([]string, len(segments))
	for i, seg := range segments {
		enriched[i] = chunker.Enrich(seg, doc.Title, i, doc.DocType)
	}

	batch, err := s.embed.BatchEmbed(ctx, enriched)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(batch.Embeddings) != len(segments) {
		return nil, fmt.Errorf("embed chunks: got %d vectors for %d segments",
			len(batch.Embeddings), len(segments))
	}

	chunks := make([]domain.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = domain.Chunk{
			DocumentID:   id,
			Index:        i,
			Text:         capText(seg),
			EnrichedText: capText(enriched[i]),
			TokenCount:   len(strings.Fields(seg)),
			Embedding:    batch.Embeddings[i],
		}
	}
	if err := s.repo.InsertChunks(ctx, doc, chunks); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	metrics.IngestDocumentsTotal.Inc()
	metrics.IngestChunksTotal.Add(float64(len(chunks)))

	return &domain.IngestResult{
		DocumentID: id,
		Title:      doc.Title,
		ChunkCount: len(chunks),
		ElapsedMS:  time.Since(start).Milliseconds(),
	}, nil
}

// capText bounds stored text at MaxChunkTextLen characters.
func capText(s string) string {
	if len(s) <= domain.MaxChunkTextLen {
		return s
	}
	r := []rune(s)
	if len(r) <= domain.MaxChunkTextLen {
		return s
	}
	return string(r[:domain.MaxChunkTextLen])
}
