// Package querycache caches complete search responses keyed by the exact
// query text. The cache is an accelerator only: every failure degrades to
// a miss or a no-op, never to a search error.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hermes-rag/hermes/internal/db"
	"github.com/hermes-rag/hermes/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "qcache:"

// fingerprintLen is the number of hex digits of the query hash kept in the key.
const fingerprintLen = 16

// store is the consumer interface for the query cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores search responses with a TTL.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a query cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached response for the exact query, or ok=false on miss.
func (c *Cache) Get(ctx context.Context, query string) (*domain.SearchResponse, bool) {
	key := cacheKey(query)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read query cache", zap.String("key", key), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("Failed to decode cached response", zap.String("key", key), zap.Error(err))
		c.inc("miss")
		return nil, false
	}

	c.inc("hit")
	return &resp, true
}

// Put stores a response under the exact query. Empty result sets are not
// cached so transient index gaps do not stick for a full TTL.
func (c *Cache) Put(ctx context.Context, query string, resp *domain.SearchResponse) {
	if resp == nil || len(resp.Results) == 0 {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.Error(err))
		return
	}

	key := cacheKey(query)
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to write query cache", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey fingerprints the exact query text. Two queries collide only if
// the first 64 bits of their SHA-256 match.
func cacheKey(query string) string {
	h := sha256.Sum256([]byte(query))
	return cacheKeyPrefix + hex.EncodeToString(h[:])[:fingerprintLen]
}
