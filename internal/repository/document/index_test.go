package document

import (
	"context"
	"strings"
	"testing"

	"github.com/hermes-rag/hermes/internal/db"
)

func testIndexParams() IndexParams {
	return IndexParams{VectorDim: 4, HNSWM: 16, HNSWEFConst: 200}
}

func TestEnsureIndex_CreatesWhenAbsent(t *testing.T) {
	im := &mockIndexManager{}
	im.createFn = func(_ context.Context, def *db.IndexDefinition) error {
		if def.Name != ChunkIndexName {
			t.Errorf("unexpected index name %s", def.Name)
		}
		return nil
	}

	if err := EnsureIndex(context.Background(), im, testIndexParams()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if im.existsCalls != 1 || im.createCalls != 1 {
		t.Errorf("expected probe then create, got exists=%d create=%d", im.existsCalls, im.createCalls)
	}
}

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	im := &mockIndexManager{
		existsFn: func(context.Context, string) (bool, error) { return true, nil },
	}

	if err := EnsureIndex(context.Background(), im, testIndexParams()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if im.createCalls != 0 {
		t.Errorf("expected no create call, got %d", im.createCalls)
	}
}

func TestEnsureIndex_ConcurrentCreate(t *testing.T) {
	im := &mockIndexManager{
		createFn: func(context.Context, *db.IndexDefinition) error { return db.ErrIndexExists },
	}

	if err := EnsureIndex(context.Background(), im, testIndexParams()); err != nil {
		t.Fatalf("expected existing index to be tolerated, got %v", err)
	}
}

func TestEnsureIndex_RejectsBadDefinition(t *testing.T) {
	im := &mockIndexManager{}

	err := EnsureIndex(context.Background(), im, IndexParams{VectorDim: 0})
	if err == nil || !strings.Contains(err.Error(), "chunk index definition") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if im.existsCalls != 0 || im.createCalls != 0 {
		t.Error("expected no backend calls for an invalid definition")
	}
}
