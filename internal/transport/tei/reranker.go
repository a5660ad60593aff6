// Package tei implements the cross-encoder reranking provider against a
// text-embeddings-inference style /rerank endpoint.
package tei

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hermes-rag/hermes/internal/domain"
)

// Reranker scores (query, text) pairs over HTTP.
type Reranker struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// Config holds the reranking provider settings.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewReranker creates a rerank client.
func NewReranker(cfg *Config) *Reranker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Reranker{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		logger:  cfg.Logger,
	}
}

type rerankRequest struct {
	Query string   `json:"query"`
	Texts []string `json:"texts"`
	Model string   `json:"model,omitempty"`
}

type rerankEntry struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// ScorePairs implements domain.Reranker. The endpoint may return entries in
// relevance order; they are mapped back to input order by index.
func (r *Reranker) ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(rerankRequest{Query: query, Texts: texts, Model: r.model})
	if err != nil {
		return nil, fmt.Errorf("encode rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", domain.ErrRerankerError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rerank API error %d: %s: %w",
			resp.StatusCode, string(msg), domain.ErrRerankerError)
	}

	var entries []rerankEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w", domain.ErrRerankerError)
	}
	if len(entries) != len(texts) {
		return nil, fmt.Errorf("rerank API returned %d scores for %d texts: %w",
			len(entries), len(texts), domain.ErrRerankerError)
	}

	scores := make([]float64, len(texts))
	for _, e := range entries {
		if e.Index < 0 || e.Index >= len(scores) {
			return nil, fmt.Errorf("rerank API returned index %d out of range: %w",
				e.Index, domain.ErrRerankerError)
		}
		scores[e.Index] = e.Score
	}
	return scores, nil
}

// HealthCheck verifies endpoint availability via its /health route.
func (r *Reranker) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("reranker unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reranker health status %d", resp.StatusCode)
	}
	return nil
}
