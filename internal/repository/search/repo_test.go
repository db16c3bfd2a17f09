package search

import (
	"context"
	"errors"
	"testing"

	"github.com/arama-cloud/arama/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchKNNFn func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func TestSearchKNN_HappyPath(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != "arama:documents:idx" {
			t.Errorf("unexpected index name: %s", q.IndexName)
		}
		if q.K != 5 {
			t.Errorf("unexpected K: %d", q.K)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: "arama:documents:1", Score: 0.12, Fields: map[string]string{
					"text": "Doktor randevusu", "filename": "saglik.txt",
				}},
				{Key: "arama:documents:2", Score: 0.48, Fields: map[string]string{
					"text": "Okul kaydı", "filename": "egitim.txt",
				}},
			},
		}, nil
	}

	candidates, err := repo.SearchKNN(ctx, "documents", []float32{0.1, 0.2}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].RawScore != 0.12 || candidates[0].Text != "Doktor randevusu" || candidates[0].Filename != "saglik.txt" {
		t.Errorf("unexpected candidate: %+v", candidates[0])
	}
}

func TestSearchKNN_Empty(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	candidates, err := repo.SearchKNN(context.Background(), "documents", []float32{0.1}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates != nil {
		t.Errorf("expected nil candidates, got %v", candidates)
	}
}

func TestSearchKNN_StoreError(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection lost")
	}

	if _, err := repo.SearchKNN(context.Background(), "documents", []float32{0.1}, 3); err == nil {
		t.Fatal("expected error")
	}
}
