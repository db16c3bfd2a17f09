// Package ingest embeds uploaded text and persists it into the collection.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arama-cloud/arama/internal/domain"
)

// Service handles document ingestion.
type Service struct {
	repo       Repository
	embed      Embedder
	collection string
	log        *zap.Logger
}

// New creates an ingest service bound to one collection.
func New(repo Repository, embed Embedder, collection string, log *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, collection: collection, log: log}
}

// Ingest embeds the text and stores it under the given filename, returning
// the store-assigned document id. Empty or whitespace-only text returns
// domain.ErrEmptyInput without touching the embedder or the store. The write
// is flushed before returning, so a search issued right after sees it.
func (s *Service) Ingest(ctx context.Context, filename, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, domain.ErrEmptyInput
	}

	embResult, err := s.embed.Embed(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("vectorize document: %w", err)
	}

	doc := &domain.Document{
		Text:     text,
		Filename: filename,
		Vector:   embResult.Embedding,
	}

	id, err := s.repo.Insert(ctx, s.collection, doc)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}

	if err := s.repo.Flush(ctx); err != nil {
		return 0, fmt.Errorf("flush after insert: %w", err)
	}

	s.log.Info("document ingested",
		zap.Int64("id", id),
		zap.String("filename", doc.Filename),
		zap.Int("text_len", len(doc.Text)))

	return id, nil
}
