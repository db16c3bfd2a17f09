package domain

import (
	"context"
	"fmt"
	"math"
)

// Embedder is the shared text vectorization contract between layers.
// Implementations must return a vector of exactly Dimensions() length,
// be deterministic for identical input, and accept empty or whitespace-only
// text without error (a zero or degenerate vector is acceptable).
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
	Dimensions() int
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// RolePrefixEmbedder is a domain decorator that prepends a role marker
// ("passage: ", "query: ") before embedding. Whether a marker is needed is a
// property of the embedding model's training convention, so it lives in
// configuration rather than in the pipeline.
type RolePrefixEmbedder struct {
	inner  Embedder
	prefix string
}

// NewRolePrefixEmbedder creates a decorator that prepends a role marker.
func NewRolePrefixEmbedder(inner Embedder, prefix string) *RolePrefixEmbedder {
	return &RolePrefixEmbedder{inner: inner, prefix: prefix}
}

// Embed prepends the role marker and delegates to the inner embedder.
func (e *RolePrefixEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	result, err := e.inner.Embed(ctx, e.prefix+text)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("role prefix embed: %w", err)
	}
	return result, nil
}

// Dimensions reports the inner embedder's vector dimension.
func (e *RolePrefixEmbedder) Dimensions() int { return e.inner.Dimensions() }

// L2Normalize scales v to unit length in place and returns it.
// A zero vector is returned unchanged.
func L2Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
