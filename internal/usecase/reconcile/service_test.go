package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/arama-cloud/arama/internal/domain"
	domcol "github.com/arama-cloud/arama/internal/domain/collection"
)

type mockCollections struct {
	hasFn      func(ctx context.Context, name string) (bool, error)
	describeFn func(ctx context.Context, name string) (domcol.Collection, error)
	createFn   func(ctx context.Context, col domcol.Collection) error
	dropFn     func(ctx context.Context, name string) error
	loadFn     func(ctx context.Context, name string) error
	creates    []domcol.Collection
	drops      int
}

func (m *mockCollections) Has(ctx context.Context, name string) (bool, error) {
	if m.hasFn != nil {
		return m.hasFn(ctx, name)
	}
	return false, nil
}

func (m *mockCollections) Describe(ctx context.Context, name string) (domcol.Collection, error) {
	if m.describeFn != nil {
		return m.describeFn(ctx, name)
	}
	return domcol.Collection{}, domain.ErrNotFound
}

func (m *mockCollections) Create(ctx context.Context, col domcol.Collection) error {
	m.creates = append(m.creates, col)
	if m.createFn != nil {
		return m.createFn(ctx, col)
	}
	return nil
}

func (m *mockCollections) Drop(ctx context.Context, name string) error {
	m.drops++
	if m.dropFn != nil {
		return m.dropFn(ctx, name)
	}
	return nil
}

func (m *mockCollections) Load(ctx context.Context, name string) error {
	if m.loadFn != nil {
		return m.loadFn(ctx, name)
	}
	return nil
}

type mockDocuments struct {
	inserted []*domain.Document
	batches  int
	flushes  int
}

func (m *mockDocuments) InsertMany(_ context.Context, _ string, docs []*domain.Document) error {
	m.inserted = append(m.inserted, docs...)
	m.batches++
	return nil
}

func (m *mockDocuments) Flush(context.Context) error {
	m.flushes++
	return nil
}

type mockEmbedder struct {
	calls int
}

func (m *mockEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	m.calls++
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "initial_data.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(colls *mockCollections, docs *mockDocuments, emb *mockEmbedder, seedPath string) *Service {
	return New(colls, docs, emb, "documents", seedPath, zap.NewNop())
}

func TestReconcile_CreatesWhenAbsent(t *testing.T) {
	colls := &mockCollections{}
	docs := &mockDocuments{}
	seed := writeSeedFile(t, "birinci satır\n\nikinci satır\n   \nüçüncü satır\n")
	svc := newTestService(colls, docs, &mockEmbedder{}, seed)

	outcome, err := svc.Reconcile(context.Background(), 768)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Fatalf("expected %q, got %q", OutcomeCreated, outcome)
	}
	if len(colls.creates) != 1 || colls.creates[0].VectorDim() != 768 {
		t.Fatalf("unexpected creates: %+v", colls.creates)
	}
	if colls.drops != 0 {
		t.Fatal("nothing to drop when absent")
	}
	// Blank and whitespace-only lines are skipped.
	if len(docs.inserted) != 3 {
		t.Fatalf("expected 3 seed documents, got %d", len(docs.inserted))
	}
	if docs.batches != 1 {
		t.Fatalf("expected a single insert batch, got %d", docs.batches)
	}
	if docs.inserted[0].Filename != "initial_data.txt" {
		t.Fatalf("unexpected provenance %q", docs.inserted[0].Filename)
	}
	if docs.flushes != 1 {
		t.Fatalf("expected one flush after seeding, got %d", docs.flushes)
	}
}

func TestReconcile_ReusesOnMatchingDim(t *testing.T) {
	colls := &mockCollections{
		hasFn: func(context.Context, string) (bool, error) { return true, nil },
		describeFn: func(context.Context, string) (domcol.Collection, error) {
			return domcol.Reconstruct("documents", 768, 1700000000000), nil
		},
	}
	docs := &mockDocuments{}
	emb := &mockEmbedder{}
	svc := newTestService(colls, docs, emb, "")

	outcome, err := svc.Reconcile(context.Background(), 768)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeReused {
		t.Fatalf("expected %q, got %q", OutcomeReused, outcome)
	}
	if colls.drops != 0 || len(colls.creates) != 0 {
		t.Fatal("matching collection must be left alone")
	}
	if emb.calls != 0 || len(docs.inserted) != 0 {
		t.Fatal("reuse must not reseed")
	}
}

func TestReconcile_RecreatesOnDimMismatch(t *testing.T) {
	colls := &mockCollections{
		hasFn: func(context.Context, string) (bool, error) { return true, nil },
		describeFn: func(context.Context, string) (domcol.Collection, error) {
			return domcol.Reconstruct("documents", 512, 1700000000000), nil
		},
	}
	docs := &mockDocuments{}
	seed := writeSeedFile(t, "tek satır\n")
	svc := newTestService(colls, docs, &mockEmbedder{}, seed)

	outcome, err := svc.Reconcile(context.Background(), 768)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeRecreated {
		t.Fatalf("expected %q, got %q", OutcomeRecreated, outcome)
	}
	if colls.drops != 1 {
		t.Fatalf("expected one drop, got %d", colls.drops)
	}
	if len(colls.creates) != 1 || colls.creates[0].VectorDim() != 768 {
		t.Fatalf("expected recreate at 768, got %+v", colls.creates)
	}
	if len(docs.inserted) != 1 {
		t.Fatalf("expected reseed, got %d documents", len(docs.inserted))
	}
}

func TestReconcile_RecreatesOnUnreadableMetadata(t *testing.T) {
	colls := &mockCollections{
		hasFn: func(context.Context, string) (bool, error) { return true, nil },
		describeFn: func(context.Context, string) (domcol.Collection, error) {
			return domcol.Collection{}, errors.New("corrupt vector_dim field")
		},
	}
	svc := newTestService(colls, &mockDocuments{}, &mockEmbedder{}, "")

	outcome, err := svc.Reconcile(context.Background(), 768)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeRecreated {
		t.Fatalf("expected %q, got %q", OutcomeRecreated, outcome)
	}
	if colls.drops != 1 || len(colls.creates) != 1 {
		t.Fatalf("expected drop+create, got drops=%d creates=%d", colls.drops, len(colls.creates))
	}
}

func TestReconcile_RecreatesOnMissingIndex(t *testing.T) {
	colls := &mockCollections{
		hasFn: func(context.Context, string) (bool, error) { return true, nil },
		describeFn: func(context.Context, string) (domcol.Collection, error) {
			return domcol.Reconstruct("documents", 768, 1700000000000), nil
		},
		loadFn: func(context.Context, string) error { return domain.ErrNotFound },
	}
	svc := newTestService(colls, &mockDocuments{}, &mockEmbedder{}, "")

	outcome, err := svc.Reconcile(context.Background(), 768)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeRecreated {
		t.Fatalf("expected %q, got %q", OutcomeRecreated, outcome)
	}
}

func TestReconcile_DropNotFoundTolerated(t *testing.T) {
	colls := &mockCollections{
		hasFn:  func(context.Context, string) (bool, error) { return true, nil },
		dropFn: func(context.Context, string) error { return domain.ErrNotFound },
		describeFn: func(context.Context, string) (domcol.Collection, error) {
			return domcol.Reconstruct("documents", 512, 1700000000000), nil
		},
	}
	svc := newTestService(colls, &mockDocuments{}, &mockEmbedder{}, "")

	if _, err := svc.Reconcile(context.Background(), 768); err != nil {
		t.Fatalf("drop on a vanished collection must be tolerated: %v", err)
	}
}

func TestReconcile_MissingSeedFileFails(t *testing.T) {
	colls := &mockCollections{}
	svc := newTestService(colls, &mockDocuments{}, &mockEmbedder{}, "/nonexistent/seed.txt")

	if _, err := svc.Reconcile(context.Background(), 768); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}
