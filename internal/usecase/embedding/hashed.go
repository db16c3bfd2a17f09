// Package embedding provides embedder implementations and decorators used by
// the ingest and search pipelines.
package embedding

import (
	"context"
	"hash/fnv"

	"github.com/arama-cloud/arama/internal/domain"
	"github.com/arama-cloud/arama/internal/turkish"
)

// HashedEmbedder is a deterministic local vectorizer: normalized stem tokens
// are hashed into a fixed-size bag-of-words vector of non-negative counts.
// It needs no external provider, which makes it the default for local runs
// and tests; texts sharing stems land on the same components, and cosine
// similarity is scale-invariant, so the counts are left unnormalized.
type HashedEmbedder struct {
	dimensions int
}

// NewHashedEmbedder creates a hashed bag-of-words embedder.
func NewHashedEmbedder(dimensions int) *HashedEmbedder {
	return &HashedEmbedder{dimensions: dimensions}
}

// Embed implements domain.Embedder. A text with no usable tokens yields the
// zero vector.
func (h *HashedEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, h.dimensions)

	for token := range turkish.TokenSet(text) {
		f := fnv.New32a()
		_, _ = f.Write([]byte(token))

		idx := int(f.Sum32() % uint32(h.dimensions))
		vec[idx]++
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}

// Dimensions returns the vector size.
func (h *HashedEmbedder) Dimensions() int {
	return h.dimensions
}

// HealthCheck always succeeds: the hashed embedder has no external dependency.
func (h *HashedEmbedder) HealthCheck(_ context.Context) error {
	return nil
}
