package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arama-cloud/arama/internal/domain"
	"github.com/arama-cloud/arama/internal/domain/search/result"
	"github.com/arama-cloud/arama/internal/metrics"
)

// DefaultTopK is how many ANN candidates to retrieve before reranking.
const DefaultTopK = 10

// Service runs the query pipeline: embed, ANN retrieval, rerank.
type Service struct {
	repo       Repository
	embed      Embedder
	collection string
	topK       int
	rerank     RerankOptions
	log        *zap.Logger
}

// New creates a search service bound to one collection.
func New(repo Repository, embed Embedder, collection string, opts RerankOptions, log *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		embed:      embed,
		collection: collection,
		topK:       DefaultTopK,
		rerank:     opts,
		log:        log,
	}
}

// WithTopK overrides the ANN candidate count.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Search embeds the query, retrieves candidates, and reranks them. An empty
// or whitespace-only query returns an empty result without touching the
// embedder or the store. Backend faults come back wrapped in
// domain.ErrSearchFailed; an empty result set is not a fault.
func (s *Service) Search(ctx context.Context, query string) ([]result.Result, error) {
	if strings.TrimSpace(query) == "" {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return nil, nil
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: vectorize query: %w", domain.ErrSearchFailed, err)
	}

	candidates, err := s.repo.SearchKNN(ctx, s.collection, embResult.Embedding, s.topK)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: knn retrieval: %w", domain.ErrSearchFailed, err)
	}

	results := Rerank(query, candidates, s.rerank)
	metrics.SearchCandidatesReturned.Observe(float64(len(results)))

	switch {
	case len(results) == 0:
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
	case Fellback(results, s.rerank.Threshold):
		metrics.SearchRequestsTotal.WithLabelValues("fallback").Inc()
		s.log.Debug("no result cleared the score threshold, returning fallback",
			zap.Int("threshold", s.rerank.Threshold),
			zap.Int("returned", len(results)))
	default:
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	}

	return results, nil
}
