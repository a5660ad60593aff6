// Package search implements the retrieval pipeline: cache check, query
// embedding, hybrid vector+keyword candidate collection, RRF fusion, and
// optional cross-encoder reranking.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hermes-rag/hermes/internal/domain"
	"github.com/hermes-rag/hermes/internal/metrics"
)

// Service executes retrieval requests.
type Service struct {
	repo     Repository
	embed    Embedder
	reranker Reranker // nil disables reranking regardless of the request
	cache    Cache    // nil disables caching regardless of the request
	params   Params
}

// New creates a search service.
func New(repo Repository, embed Embedder, reranker Reranker, cache Cache, params Params) *Service {
	return &Service{
		repo:     repo,
		embed:    embed,
		reranker: reranker,
		cache:    cache,
		params:   params,
	}
}

// Search runs the full retrieval pipeline for one query.
func (s *Service) Search(ctx context.Context, req Request) (*domain.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.params.ResultTopK
	}

	start := time.Now()

	if req.UseCache && s.cache != nil {
		if resp, ok := s.cache.Get(ctx, query); ok {
			resp.Cached = true
			resp.ElapsedMS = time.Since(start).Milliseconds()
			metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
			return resp, nil
		}
	}

	resp, err := s.retrieve(ctx, query, limit, req.UseReranker)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	resp.ElapsedMS = time.Since(start).Milliseconds()
	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())

	if req.UseCache && s.cache != nil {
		s.cache.Put(ctx, query, resp)
	}
	return resp, nil
}

func (s *Service) retrieve(ctx context.Context, query string, limit int, useReranker bool) (*domain.SearchResponse, error) {
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	// The two searches share no state; run them concurrently and merge
	// only in the fusion step.
	var (
		wg             sync.WaitGroup
		vecHits, kwHits []domain.Candidate
		vecErr, kwErr  error
	)
	retrieveStart := time.Now()
	wg.Add(2)
	go func() {
		defer wg.Done()
		vecHits, vecErr = s.repo.VectorSearch(ctx, emb.Embedding, s.params.CandidateTopK)
	}()
	go func() {
		defer wg.Done()
		kwHits, kwErr = s.repo.KeywordSearch(ctx, query, s.params.CandidateTopK)
	}()
	wg.Wait()

	if vecErr != nil {
		return nil, fmt.Errorf("vector search: %w", vecErr)
	}
	if kwErr != nil {
		return nil, fmt.Errorf("keyword search: %w", kwErr)
	}
	metrics.SearchDuration.WithLabelValues("retrieve").Observe(time.Since(retrieveStart).Seconds())

	fused := fuseRRF(vecHits, kwHits, s.params)
	total := len(fused)

	var results []domain.Candidate
	if useReranker && s.reranker != nil {
		pool := fused
		if len(pool) > s.params.CandidateTopK {
			pool = pool[:s.params.CandidateTopK]
		}
		rerankStart := time.Now()
		results, err = rerank(ctx, s.reranker, query, pool, limit)
		if err != nil {
			metrics.RerankRequestsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("rerank: %w", err)
		}
		metrics.RerankRequestsTotal.WithLabelValues("ok").Inc()
		metrics.SearchDuration.WithLabelValues("rerank").Observe(time.Since(rerankStart).Seconds())
	} else {
		if len(fused) > limit {
			fused = fused[:limit]
		}
		results = fused
	}

	return &domain.SearchResponse{
		Query:           query,
		Results:         results,
		TotalCandidates: total,
	}, nil
}
