package search

import (
	"context"

	"github.com/arama-cloud/arama/internal/domain"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	SearchKNN(
		ctx context.Context, collectionName string,
		vector []float32, topK int,
	) ([]domain.Candidate, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
