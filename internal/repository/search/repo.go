// Package search runs KNN retrieval against a collection's vector index and
// maps raw hits into rerank candidates.
package search

import (
	"context"
	"fmt"

	"github.com/arama-cloud/arama/internal/db"
	"github.com/arama-cloud/arama/internal/domain"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the search repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchKNN performs a KNN vector search on a collection and returns raw
// candidates. Scores carry the store's native metric value untouched.
func (r *Repo) SearchKNN(
	ctx context.Context, collectionName string, vector []float32, topK int,
) ([]domain.Candidate, error) {
	indexName := fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collectionName)

	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{"text", "filename", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", collectionName, err)
	}

	return parseCandidates(sr), nil
}

// parseCandidates converts db.SearchResult into rerank candidates.
func parseCandidates(sr *db.SearchResult) []domain.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	candidates := make([]domain.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		candidates = append(candidates, domain.Candidate{
			RawScore: entry.Score,
			Text:     entry.Fields["text"],
			Filename: entry.Fields["filename"],
		})
	}

	return candidates
}
