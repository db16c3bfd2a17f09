package search

import (
	"context"

	"github.com/arama-cloud/arama/internal/domain"
)

type mockRepo struct {
	searchKNNFn func(ctx context.Context, collectionName string, vector []float32, topK int) ([]domain.Candidate, error)
	calls       int
}

func (m *mockRepo) SearchKNN(
	ctx context.Context, collectionName string, vector []float32, topK int,
) ([]domain.Candidate, error) {
	m.calls++
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, collectionName, vector, topK)
	}
	return nil, nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}
