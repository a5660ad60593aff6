package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRerankerError signals a reranking provider failure.
	ErrRerankerError = errors.New("reranker error")
	// ErrStorageError signals a storage backend failure.
	ErrStorageError = errors.New("storage error")
)
