package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyInput signals empty or whitespace-only ingest text. Recovered at
	// the transport boundary as a no-op, never treated as a backend fault.
	ErrEmptyInput = errors.New("empty input")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSearchFailed signals a backend fault during search. Distinct from an
	// empty result set, which is a valid answer.
	ErrSearchFailed = errors.New("search failed")
)
