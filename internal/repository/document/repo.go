// Package document persists documents and their chunks as Redis hashes.
package document

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/hermes-rag/hermes/internal/db"
	"github.com/hermes-rag/hermes/internal/domain"
)

// store is the consumer interface for document storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, keys ...string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase document storage over Redis hashes.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores a new document and returns its ID. IDs are minted here
// when the document does not carry one.
func (r *Repo) Insert(ctx context.Context, doc *domain.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	fields, err := buildDocFields(doc)
	if err != nil {
		return "", fmt.Errorf("build document fields: %w", err)
	}
	if err := r.store.HSet(ctx, docKey(doc.ID), fields); err != nil {
		return "", fmt.Errorf("hset %s: %w", docKey(doc.ID), err)
	}
	return doc.ID, nil
}

// InsertChunks stores all chunks of a document in one round-trip and
// records the chunk and token totals on the document hash.
func (r *Repo) InsertChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(chunks))
	totalTokens := 0
	for i, c := range chunks {
		items[i] = db.HashSetItem{
			Key:    chunkKey(c.DocumentID, c.Index),
			Fields: buildChunkFields(doc, &c),
		}
		totalTokens += c.TokenCount
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("insert chunks for %s: %w", doc.ID, err)
	}

	counts := map[string]string{
		fieldChunkCount: strconv.Itoa(len(chunks)),
		fieldTokenCount: strconv.Itoa(totalTokens),
	}
	if err := r.store.HSet(ctx, docKey(doc.ID), counts); err != nil {
		return fmt.Errorf("update counts for %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns a document with its chunk count.
func (r *Repo) Get(ctx context.Context, id string) (domain.DocumentInfo, error) {
	m, err := r.store.HGetAll(ctx, docKey(id))
	if err != nil {
		return domain.DocumentInfo{}, fmt.Errorf("hgetall %s: %w", docKey(id), err)
	}
	// HGETALL on a missing key yields an empty map, not an error.
	if len(m) == 0 {
		return domain.DocumentInfo{}, domain.ErrDocumentNotFound
	}
	return parseDocFields(id, m), nil
}

// List returns documents ordered by creation time descending, optionally
// filtered by document type.
func (r *Repo) List(ctx context.Context, limit, offset int, docType string) (domain.DocumentPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	infos, err := r.loadAll(ctx)
	if err != nil {
		return domain.DocumentPage{}, err
	}

	if docType != "" {
		filtered := infos[:0]
		for _, info := range infos {
			if info.DocType == docType {
				filtered = append(filtered, info)
			}
		}
		infos = filtered
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].ID < infos[j].ID
	})

	total := len(infos)
	page := domain.DocumentPage{Total: total, Offset: offset}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page.Items = infos[offset:end]
		page.HasMore = end < total
	}
	return page, nil
}

// Delete removes a document and all of its chunks. Returns false when the
// document does not exist.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	exists, err := r.store.Exists(ctx, docKey(id))
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", docKey(id), err)
	}
	if !exists {
		return false, nil
	}

	chunkKeys, err := r.store.Scan(ctx, chunkPattern(id))
	if err != nil {
		return false, fmt.Errorf("scan chunks for %s: %w", id, err)
	}

	if _, err := r.store.Del(ctx, append(chunkKeys, docKey(id))...); err != nil {
		return false, fmt.Errorf("delete %s: %w", id, err)
	}
	return true, nil
}

// Stats aggregates document hashes and the chunk index into knowledge
// base totals.
func (r *Repo) Stats(ctx context.Context) (domain.Stats, error) {
	infos, err := r.loadAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	// The chunk total comes from the index itself, so stats reflect what
	// search can actually reach rather than the per-document counters.
	chunks, err := r.store.SearchCount(ctx, ChunkIndexName, "*")
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count chunks: %w", err)
	}

	stats := domain.Stats{
		Documents: len(infos),
		Chunks:    chunks,
		ByType:    make(map[string]int),
	}
	for _, info := range infos {
		stats.TotalTokens += int64(info.TokenCount)
		typ := info.DocType
		if typ == "" {
			typ = "unknown"
		}
		stats.ByType[typ]++
	}
	return stats, nil
}

func (r *Repo) loadAll(ctx context.Context) ([]domain.DocumentInfo, error) {
	keys, err := r.store.Scan(ctx, docPattern())
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	infos := make([]domain.DocumentInfo, 0, len(keys))
	for _, key := range keys {
		m, err := r.store.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("hgetall %s: %w", key, err)
		}
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		infos = append(infos, parseDocFields(docIDFromKey(key), m))
	}
	return infos, nil
}
