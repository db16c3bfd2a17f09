package ingest

import (
	"context"

	"github.com/arama-cloud/arama/internal/domain"
)

// Repository defines the storage contract for ingesting documents.
type Repository interface {
	Insert(ctx context.Context, collection string, doc *domain.Document) (int64, error)
	Flush(ctx context.Context) error
}

// Embedder vectorizes document text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
