package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hermes-rag/hermes/internal/db"
	"github.com/hermes-rag/hermes/internal/domain"
)

// ChunkIndexName is the FT index over all chunk hashes.
const ChunkIndexName = domain.KeyPrefix + "chunks:idx"

const (
	docKeyPrefix   = domain.KeyPrefix + "doc:"
	chunkKeyPrefix = domain.KeyPrefix + "chunk:"
)

// IndexParams carries the tunable parts of the chunk index schema.
type IndexParams struct {
	VectorDim   int
	HNSWM       int
	HNSWEFConst int
}

// EnsureIndex creates the chunk FT index if it does not exist yet.
// An already existing index is not an error.
func EnsureIndex(ctx context.Context, im db.IndexManager, p IndexParams) error {
	def := &db.IndexDefinition{
		Name:     ChunkIndexName,
		Prefixes: []string{chunkKeyPrefix},
		Fields: []db.IndexField{
			{Name: FieldDocumentID, Type: db.IndexFieldTag},
			{Name: FieldChunkIndex, Type: db.IndexFieldNumeric},
			{Name: FieldText, Type: db.IndexFieldText},
			{
				Name:              FieldVector,
				Type:              db.IndexFieldVector,
				VectorDim:         p.VectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           p.HNSWM,
				VectorEFConstruct: p.HNSWEFConst,
			},
		},
	}

	if err := def.Validate(); err != nil {
		return fmt.Errorf("chunk index definition: %w", err)
	}

	exists, err := im.IndexExists(ctx, ChunkIndexName)
	if err != nil {
		return fmt.Errorf("probe chunk index: %w", err)
	}
	if exists {
		return nil
	}

	if err := im.CreateIndex(ctx, def); err != nil {
		// Tolerate a concurrent create between the probe and FT.CREATE.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create chunk index: %w", err)
	}
	return nil
}

func docKey(id string) string {
	return docKeyPrefix + id
}

func docPattern() string {
	return docKeyPrefix + "*"
}

func docIDFromKey(key string) string {
	return strings.TrimPrefix(key, docKeyPrefix)
}

func chunkKey(docID string, index int) string {
	return fmt.Sprintf("%s%s:%d", chunkKeyPrefix, docID, index)
}

func chunkPattern(docID string) string {
	return chunkKeyPrefix + docID + ":*"
}

// ChunkIDFromKey strips the key namespace, leaving the "<docID>:<index>"
// form used as the chunk identity in search results.
func ChunkIDFromKey(key string) string {
	return strings.TrimPrefix(key, chunkKeyPrefix)
}
