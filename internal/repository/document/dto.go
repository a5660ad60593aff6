package document

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/hermes-rag/hermes/internal/domain"
)

// Document hash fields.
const (
	fieldTitle      = "title"
	fieldSource     = "source"
	fieldDocType    = "doc_type"
	fieldMetadata   = "metadata"
	fieldCreatedAt  = "created_at"
	fieldChunkCount = "chunk_count"
	fieldTokenCount = "token_count"
)

// Chunk hash fields. Exported so the search repository can request and
// parse the same schema it was written with.
const (
	FieldDocumentID   = "document_id"
	FieldDocTitle     = "doc_title"
	FieldChunkIndex   = "chunk_index"
	FieldText         = "text"
	FieldEnrichedText = "enriched_text"
	FieldChunkTokens  = "token_count"
	FieldVector       = "vector"
)

// buildDocFields converts a domain Document into a flat map for HSET.
func buildDocFields(doc *domain.Document) (map[string]string, error) {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	m := map[string]string{
		fieldTitle:     doc.Title,
		fieldSource:    doc.Source,
		fieldDocType:   doc.DocType,
		fieldCreatedAt: strconv.FormatInt(doc.CreatedAt.Unix(), 10),
	}
	if len(doc.Metadata) > 0 {
		data, err := json.Marshal(doc.Metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		m[fieldMetadata] = string(data)
	}
	return m, nil
}

// parseDocFields converts a flat hash map back into a DocumentInfo.
// Malformed ancillary fields degrade to zero values rather than failing
// the whole lookup.
func parseDocFields(id string, m map[string]string) domain.DocumentInfo {
	info := domain.DocumentInfo{
		Document: domain.Document{
			ID:      id,
			Title:   m[fieldTitle],
			Source:  m[fieldSource],
			DocType: m[fieldDocType],
		},
	}

	if v := m[fieldCreatedAt]; v != "" {
		if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
			info.CreatedAt = time.Unix(sec, 0).UTC()
		}
	}
	if v := m[fieldMetadata]; v != "" {
		var meta map[string]string
		if err := json.Unmarshal([]byte(v), &meta); err == nil {
			info.Metadata = meta
		}
	}
	if v := m[fieldChunkCount]; v != "" {
		info.ChunkCount, _ = strconv.Atoi(v)
	}
	if v := m[fieldTokenCount]; v != "" {
		info.TokenCount, _ = strconv.Atoi(v)
	}
	return info
}

// buildChunkFields converts a chunk into a flat map for HSET. The document
// title is denormalized onto every chunk so search hits can be rendered
// without a second lookup.
func buildChunkFields(doc *domain.Document, c *domain.Chunk) map[string]string {
	return map[string]string{
		FieldDocumentID:   c.DocumentID,
		FieldDocTitle:     doc.Title,
		FieldChunkIndex:   strconv.Itoa(c.Index),
		FieldText:         c.Text,
		FieldEnrichedText: c.EnrichedText,
		FieldChunkTokens:  strconv.Itoa(c.TokenCount),
		FieldVector:       vectorToBytes(c.Embedding),
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float,
// little-endian), the layout FT.SEARCH expects for FLOAT32 vectors.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
