// Package arama is the embedded client for the arama search pipeline:
// Turkish-aware hybrid text search over a Redis vector index, without
// running the HTTP server.
package arama

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/arama-cloud/arama/internal/db/redis"
	"github.com/arama-cloud/arama/internal/domain"
	collectionrepo "github.com/arama-cloud/arama/internal/repository/collection"
	documentrepo "github.com/arama-cloud/arama/internal/repository/document"
	searchrepo "github.com/arama-cloud/arama/internal/repository/search"
	embeddinguc "github.com/arama-cloud/arama/internal/usecase/embedding"
	ingestuc "github.com/arama-cloud/arama/internal/usecase/ingest"
	reconcileuc "github.com/arama-cloud/arama/internal/usecase/reconcile"
	searchuc "github.com/arama-cloud/arama/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// ErrEmptyInput signals empty or whitespace-only ingest text.
var ErrEmptyInput = domain.ErrEmptyInput

// EmbeddingResult carries the embedding vector and token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text. Implementations must be deterministic and return
// vectors of exactly Dimensions() length.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
	Dimensions() int
}

// Result is one reranked search hit.
type Result struct {
	Filename   string
	Text       string
	Similarity float64
	OverlapPct int
	Score      int
	Label      string
}

type ingester interface {
	Ingest(ctx context.Context, filename, text string) (int64, error)
}

type searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Client is the arama SDK entry point.
type Client struct {
	store  *dbRedis.Store
	ingest ingester
	search searcher
}

// New creates a Client, connects to the store, and reconciles the collection
// against the configured embedder before returning. The provided context
// covers the readiness check and the reconciliation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		collection: "documents",
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("arama: database address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.hashedDims <= 0 {
		return nil, errors.New("arama: embedder required (use WithEmbedder or WithHashedEmbedder)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("arama: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("arama: database not ready: %w", err)
	}

	client, err := wireClient(ctx, store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return client, nil
}

func wireClient(ctx context.Context, store *dbRedis.Store, cfg *clientConfig) (*Client, error) {
	var embedder domain.Embedder
	if cfg.hashedDims > 0 {
		embedder = embeddinguc.NewHashedEmbedder(cfg.hashedDims)
	} else {
		embedder = &embedderAdapter{inner: cfg.embedder}
	}

	collRepo := collectionrepo.New(store)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		collRepo = collRepo.WithHNSW(collectionrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}
	docRepo := documentrepo.New(store, documentrepo.Limits{})
	searchRepo := searchrepo.New(store)

	reconciler := reconcileuc.New(
		collRepo, docRepo, embedder, cfg.collection, cfg.seedFile, cfg.logger,
	)
	if _, err := reconciler.Reconcile(ctx, embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("arama: reconcile collection: %w", err)
	}

	rerankOpts := searchuc.DefaultOptions(cfg.lexical)
	if cfg.threshold > 0 {
		rerankOpts.Threshold = cfg.threshold
	}
	if cfg.fallbackTopN > 0 {
		rerankOpts.FallbackTopN = cfg.fallbackTopN
	}

	searchSvc := searchuc.New(searchRepo, embedder, cfg.collection, rerankOpts, cfg.logger)
	if cfg.topK > 0 {
		searchSvc = searchSvc.WithTopK(cfg.topK)
	}

	return &Client{
		store:  store,
		ingest: ingestuc.New(docRepo, embedder, cfg.collection, cfg.logger),
		search: &searchAdapter{svc: searchSvc},
	}, nil
}

// Close releases the store connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("arama: ping: %w", err)
	}
	return nil
}

// Ingest embeds and stores a document, returning its assigned id.
// Empty or whitespace-only text returns ErrEmptyInput.
func (c *Client) Ingest(ctx context.Context, filename, text string) (int64, error) {
	id, err := c.ingest.Ingest(ctx, filename, text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			return 0, ErrEmptyInput
		}
		return 0, fmt.Errorf("arama: ingest: %w", err)
	}
	return id, nil
}

// Search answers a query with reranked, labeled results. An empty query
// returns an empty slice and nil error.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	results, err := c.search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("arama: search: %w", err)
	}
	return results, nil
}

// embedderAdapter wraps the public Embedder to satisfy internal
// domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) Dimensions() int { return a.inner.Dimensions() }

// searchAdapter converts internal results to the public shape.
type searchAdapter struct {
	svc *searchuc.Service
}

func (a *searchAdapter) Search(ctx context.Context, query string) ([]Result, error) {
	internal, err := a.svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(internal))
	for i := range internal {
		r := &internal[i]
		results = append(results, Result{
			Filename:   r.Filename(),
			Text:       r.Text(),
			Similarity: r.Similarity(),
			OverlapPct: r.OverlapPct(),
			Score:      r.FinalScore(),
			Label:      string(r.Label()),
		})
	}
	return results, nil
}
