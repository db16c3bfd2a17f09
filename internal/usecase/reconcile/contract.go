package reconcile

import (
	"context"

	"github.com/arama-cloud/arama/internal/domain"
	domcol "github.com/arama-cloud/arama/internal/domain/collection"
)

// Collections defines the storage contract for collection lifecycle.
type Collections interface {
	Has(ctx context.Context, name string) (bool, error)
	Describe(ctx context.Context, name string) (domcol.Collection, error)
	Create(ctx context.Context, col domcol.Collection) error
	Drop(ctx context.Context, name string) error
	Load(ctx context.Context, name string) error
}

// Documents defines the storage contract for seeding documents.
type Documents interface {
	InsertMany(ctx context.Context, collection string, docs []*domain.Document) error
	Flush(ctx context.Context) error
}

// Embedder vectorizes seed text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
