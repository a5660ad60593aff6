package document

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/hermes-rag/hermes/internal/db"
	"github.com/hermes-rag/hermes/internal/domain"
)

func TestInsert_MintsID(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey = key
		if fields[fieldTitle] != "Install Guide" {
			t.Errorf("unexpected title field: %q", fields[fieldTitle])
		}
		if fields[fieldCreatedAt] == "" {
			t.Error("expected created_at to be set")
		}
		return nil
	}

	doc := testDocument(t)
	id, err := repo.Insert(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a minted ID")
	}
	if gotKey != docKey(id) {
		t.Errorf("expected key %s, got %s", docKey(id), gotKey)
	}
}

func TestInsert_KeepsExistingID(t *testing.T) {
	repo, _ := newTestRepo(t)

	doc := testDocument(t)
	doc.ID = "fixed-id"
	id, err := repo.Insert(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("expected fixed-id, got %s", id)
	}
}

func TestInsert_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetFn = func(context.Context, string, map[string]string) error {
		return errors.New("boom")
	}

	if _, err := repo.Insert(context.Background(), testDocument(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestInsertChunks_WritesChunksAndCounts(t *testing.T) {
	repo, ms := newTestRepo(t)

	doc := testDocument(t)
	doc.ID = "d1"

	var items []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, got []db.HashSetItem) error {
		items = got
		return nil
	}
	var counts map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != docKey("d1") {
			t.Errorf("unexpected counts key %s", key)
		}
		counts = fields
		return nil
	}

	chunks := testChunks(t, "d1", 3)
	if err := repo.InsertChunks(context.Background(), doc, chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Key != chunkKey("d1", 0) {
		t.Errorf("unexpected chunk key %s", items[0].Key)
	}
	if items[1].Fields[FieldDocumentID] != "d1" {
		t.Errorf("unexpected document_id field: %q", items[1].Fields[FieldDocumentID])
	}
	if items[0].Fields[FieldDocTitle] != "Install Guide" {
		t.Errorf("expected denormalized title, got %q", items[0].Fields[FieldDocTitle])
	}

	if counts[fieldChunkCount] != "3" {
		t.Errorf("expected chunk_count 3, got %q", counts[fieldChunkCount])
	}
	if counts[fieldTokenCount] != "6" {
		t.Errorf("expected token_count 6, got %q", counts[fieldTokenCount])
	}
}

func TestInsertChunks_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error {
		t.Fatal("HSetMulti should not be called for zero chunks")
		return nil
	}

	doc := testDocument(t)
	doc.ID = "d1"
	if err := repo.InsertChunks(context.Background(), doc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != docKey("d1") {
			t.Errorf("unexpected key %s", key)
		}
		return map[string]string{
			fieldTitle:      "Install Guide",
			fieldDocType:    "manual",
			fieldCreatedAt:  "1700000000",
			fieldChunkCount: "4",
			fieldTokenCount: "120",
			fieldMetadata:   `{"lang":"en"}`,
		}, nil
	}

	info, err := repo.Get(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "Install Guide" || info.ChunkCount != 4 || info.TokenCount != 120 {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Metadata["lang"] != "en" {
		t.Errorf("unexpected metadata: %v", info.Metadata)
	}
	if info.CreatedAt.Unix() != 1700000000 {
		t.Errorf("unexpected created_at: %v", info.CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(context.Context, string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestList_PaginationAndOrder(t *testing.T) {
	repo, ms := newTestRepo(t)

	docs := map[string]map[string]string{
		docKey("a"): {fieldTitle: "A", fieldDocType: "manual", fieldCreatedAt: "100"},
		docKey("b"): {fieldTitle: "B", fieldDocType: "faq", fieldCreatedAt: "300"},
		docKey("c"): {fieldTitle: "C", fieldDocType: "manual", fieldCreatedAt: "200"},
	}
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != docPattern() {
			t.Errorf("unexpected pattern %s", pattern)
		}
		return []string{docKey("a"), docKey("b"), docKey("c")}, nil
	}
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		return docs[key], nil
	}

	page, err := repo.List(context.Background(), 2, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	// newest first
	if page.Items[0].ID != "b" || page.Items[1].ID != "c" {
		t.Errorf("unexpected order: %s, %s", page.Items[0].ID, page.Items[1].ID)
	}
	if !page.HasMore {
		t.Error("expected has_more")
	}

	page, err = repo.List(context.Background(), 2, 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "a" {
		t.Errorf("unexpected last page: %+v", page.Items)
	}
	if page.HasMore {
		t.Error("expected no more pages")
	}
}

func TestList_FilterByType(t *testing.T) {
	repo, ms := newTestRepo(t)

	docs := map[string]map[string]string{
		docKey("a"): {fieldTitle: "A", fieldDocType: "manual", fieldCreatedAt: "100"},
		docKey("b"): {fieldTitle: "B", fieldDocType: "faq", fieldCreatedAt: "300"},
	}
	ms.scanFn = func(context.Context, string) ([]string, error) {
		return []string{docKey("a"), docKey("b")}, nil
	}
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		return docs[key], nil
	}

	page, err := repo.List(context.Background(), 10, 0, "faq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != "b" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestList_OffsetPastEnd(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(context.Context, string) ([]string, error) {
		return []string{docKey("a")}, nil
	}
	ms.hgetAllFn = func(context.Context, string) (map[string]string, error) {
		return map[string]string{fieldTitle: "A"}, nil
	}

	page, err := repo.List(context.Background(), 10, 50, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 0 || page.HasMore {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestDelete_RemovesDocAndChunks(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.existsFn = func(context.Context, string) (bool, error) { return true, nil }
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != chunkPattern("d1") {
			t.Errorf("unexpected pattern %s", pattern)
		}
		return []string{chunkKey("d1", 0), chunkKey("d1", 1)}, nil
	}
	var deleted []string
	ms.delFn = func(_ context.Context, keys ...string) (int64, error) {
		deleted = keys
		return int64(len(keys)), nil
	}

	found, err := repo.Delete(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected found")
	}
	if len(deleted) != 3 {
		t.Fatalf("expected 3 deleted keys, got %v", deleted)
	}
	if deleted[2] != docKey("d1") {
		t.Errorf("expected document key last, got %v", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(context.Context, string) (bool, error) { return false, nil }
	ms.delFn = func(_ context.Context, keys ...string) (int64, error) {
		t.Fatal("Del should not be called")
		return 0, nil
	}

	found, err := repo.Delete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
}

func TestStats_Aggregates(t *testing.T) {
	repo, ms := newTestRepo(t)

	docs := map[string]map[string]string{
		docKey("a"): {fieldDocType: "manual", fieldChunkCount: "3", fieldTokenCount: "90"},
		docKey("b"): {fieldDocType: "manual", fieldChunkCount: "2", fieldTokenCount: "60"},
		docKey("c"): {fieldChunkCount: "1", fieldTokenCount: "10"},
	}
	ms.scanFn = func(context.Context, string) ([]string, error) {
		return []string{docKey("a"), docKey("b"), docKey("c")}, nil
	}
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		return docs[key], nil
	}
	ms.searchCountFn = func(_ context.Context, index, query string) (int, error) {
		if index != ChunkIndexName || query != "*" {
			t.Errorf("unexpected count query %s %s", index, query)
		}
		return 6, nil
	}

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Documents != 3 || stats.Chunks != 6 || stats.TotalTokens != 160 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.ByType["manual"] != 2 || stats.ByType["unknown"] != 1 {
		t.Errorf("unexpected by_type: %v", stats.ByType)
	}
}

func TestStats_CountError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchCountFn = func(context.Context, string, string) (int, error) {
		return 0, errors.New("index gone")
	}

	_, err := repo.Stats(context.Background())
	if err == nil || !strings.Contains(err.Error(), "count chunks") {
		t.Fatalf("expected count chunks error, got %v", err)
	}
}

func TestChunkIDFromKey(t *testing.T) {
	id := ChunkIDFromKey(chunkKey("d1", 7))
	if id != "d1:"+strconv.Itoa(7) {
		t.Errorf("unexpected chunk id %q", id)
	}
}

func TestBuildChunkFields_Vector(t *testing.T) {
	doc := &domain.Document{ID: "d1", Title: "T"}
	c := &domain.Chunk{DocumentID: "d1", Index: 0, Embedding: []float32{1, 2, 3}}
	fields := buildChunkFields(doc, c)
	if len(fields[FieldVector]) != 12 {
		t.Errorf("expected 12 vector bytes, got %d", len(fields[FieldVector]))
	}
}
