// Package reconcile converges the persisted collection onto the configured
// embedding dimension at startup. The collection is the derived artifact:
// when its declared dimension disagrees with the active embedder, it is
// dropped and rebuilt from seed data rather than patched.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/arama-cloud/arama/internal/domain"
	domcol "github.com/arama-cloud/arama/internal/domain/collection"
)

// Outcome describes what reconciliation did.
type Outcome string

const (
	// OutcomeCreated means no collection existed and one was built.
	OutcomeCreated Outcome = "created"
	// OutcomeReused means the existing collection matched and was kept.
	OutcomeReused Outcome = "reused"
	// OutcomeRecreated means the existing collection was dropped and rebuilt.
	OutcomeRecreated Outcome = "recreated"
)

// Service drives the startup reconciliation.
type Service struct {
	colls      Collections
	docs       Documents
	embed      Embedder
	collection string
	seedPath   string
	log        *zap.Logger
}

// New creates a reconcile service for one collection. seedPath may be empty,
// in which case a rebuilt collection starts without documents.
func New(colls Collections, docs Documents, embed Embedder, collection, seedPath string, log *zap.Logger) *Service {
	return &Service{
		colls:      colls,
		docs:       docs,
		embed:      embed,
		collection: collection,
		seedPath:   seedPath,
		log:        log,
	}
}

// Reconcile converges the collection onto activeDim. Existing collections
// with a matching dimension are kept as-is, including their documents. A
// missing collection, an unreadable one, or a dimension mismatch triggers a
// full rebuild seeded from the configured seed file.
func (s *Service) Reconcile(ctx context.Context, activeDim int) (Outcome, error) {
	exists, err := s.colls.Has(ctx, s.collection)
	if err != nil {
		return "", fmt.Errorf("check collection %s: %w", s.collection, err)
	}

	if !exists {
		if err := s.build(ctx, activeDim); err != nil {
			return "", err
		}
		s.log.Info("collection created",
			zap.String("collection", s.collection),
			zap.Int("vector_dim", activeDim))
		return OutcomeCreated, nil
	}

	col, err := s.colls.Describe(ctx, s.collection)
	switch {
	case err == nil && col.VectorDim() == activeDim:
		if loadErr := s.colls.Load(ctx, s.collection); loadErr == nil {
			s.log.Info("collection reused",
				zap.String("collection", s.collection),
				zap.Int("vector_dim", activeDim))
			return OutcomeReused, nil
		}
		// Metadata is fine but the index is gone. Rebuild.
		s.log.Warn("collection metadata present but index missing, rebuilding",
			zap.String("collection", s.collection))
	case err == nil:
		s.log.Warn("collection dimension mismatch, rebuilding",
			zap.String("collection", s.collection),
			zap.Int("stored_dim", col.VectorDim()),
			zap.Int("active_dim", activeDim))
	case errors.Is(err, domain.ErrNotFound):
		// Race between Has and Describe; treat as absent.
	default:
		s.log.Warn("collection metadata unreadable, rebuilding",
			zap.String("collection", s.collection),
			zap.Error(err))
	}

	if err := s.colls.Drop(ctx, s.collection); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("drop collection %s: %w", s.collection, err)
	}

	if err := s.build(ctx, activeDim); err != nil {
		return "", err
	}

	s.log.Info("collection recreated",
		zap.String("collection", s.collection),
		zap.Int("vector_dim", activeDim))
	return OutcomeRecreated, nil
}

// build creates the collection at the given dimension and seeds it.
func (s *Service) build(ctx context.Context, dim int) error {
	col, err := domcol.New(s.collection, dim)
	if err != nil {
		return fmt.Errorf("collection %s: %w", s.collection, err)
	}

	if err := s.colls.Create(ctx, col); err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, err)
	}

	return s.seed(ctx)
}

// seed loads the seed file line by line, skipping blanks, and inserts the
// lines as one batch of documents tagged with the seed file's base name.
func (s *Service) seed(ctx context.Context) error {
	if s.seedPath == "" {
		return nil
	}

	raw, err := os.ReadFile(s.seedPath)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", s.seedPath, err)
	}

	provenance := filepath.Base(s.seedPath)
	var docs []*domain.Document

	for _, line := range strings.Split(string(raw), "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		embResult, err := s.embed.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("vectorize seed line: %w", err)
		}

		docs = append(docs, &domain.Document{
			Text:     text,
			Filename: provenance,
			Vector:   embResult.Embedding,
		})
	}

	if len(docs) > 0 {
		if err := s.docs.InsertMany(ctx, s.collection, docs); err != nil {
			return fmt.Errorf("insert seed documents: %w", err)
		}
		if err := s.docs.Flush(ctx); err != nil {
			return fmt.Errorf("flush seed documents: %w", err)
		}
	}

	s.log.Info("seed data loaded",
		zap.String("collection", s.collection),
		zap.String("source", provenance),
		zap.Int("documents", len(docs)))
	return nil
}
