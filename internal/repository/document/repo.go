// Package document persists documents as store hashes under the collection's
// key prefix, where the collection's FT index picks them up.
package document

import (
	"context"
	"fmt"

	"github.com/arama-cloud/arama/internal/db"
	"github.com/arama-cloud/arama/internal/domain"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Incr(ctx context.Context, key string) (int64, error)
	Wait(ctx context.Context) error
}

// Limits bound stored field sizes. Oversized values are truncated, not
// rejected, so ingest never fails on long inputs.
type Limits struct {
	MaxTextLen     int
	MaxFilenameLen int
}

// Repo implements the document repository.
type Repo struct {
	store  store
	limits Limits
}

// New creates a document repository.
func New(s store, limits Limits) *Repo {
	if limits.MaxTextLen <= 0 {
		limits.MaxTextLen = 2000
	}
	if limits.MaxFilenameLen <= 0 {
		limits.MaxFilenameLen = 255
	}
	return &Repo{store: s, limits: limits}
}

// Insert stores a document with a store-assigned id and returns that id.
// The id counter is atomic, so concurrent inserts never collide.
func (r *Repo) Insert(ctx context.Context, collection string, doc *domain.Document) (int64, error) {
	id, err := r.store.Incr(ctx, counterKey(collection))
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", collection, err)
	}

	doc.ID = id
	doc.Text = truncateRunes(doc.Text, r.limits.MaxTextLen)
	doc.Filename = truncateRunes(doc.Filename, r.limits.MaxFilenameLen)

	key := docKey(collection, id)
	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return 0, fmt.Errorf("hset %s: %w", key, err)
	}

	return id, nil
}

// InsertMany stores a batch of documents in one pipelined write. Ids are
// still assigned one by one from the atomic counter; only the hash writes
// are batched.
func (r *Repo) InsertMany(ctx context.Context, collection string, docs []*domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, len(docs))
	for _, doc := range docs {
		id, err := r.store.Incr(ctx, counterKey(collection))
		if err != nil {
			return fmt.Errorf("next id for %s: %w", collection, err)
		}

		doc.ID = id
		doc.Text = truncateRunes(doc.Text, r.limits.MaxTextLen)
		doc.Filename = truncateRunes(doc.Filename, r.limits.MaxFilenameLen)

		items = append(items, db.HashSetItem{
			Key:    docKey(collection, id),
			Fields: buildHashFields(doc),
		})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi %s: %w", collection, err)
	}
	return nil
}

// Flush blocks until writes are durable and visible to subsequent searches.
func (r *Repo) Flush(ctx context.Context) error {
	if err := r.store.Wait(ctx); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func docKey(collection string, id int64) string {
	return fmt.Sprintf("%s%s:%d", domain.KeyPrefix, collection, id)
}

// counterKey lives under arama:meta:, outside the collection's indexed
// prefix, so the FT index never tries to index the counter string.
func counterKey(collection string) string {
	return fmt.Sprintf("%smeta:%s:next_id", domain.KeyPrefix, collection)
}

// truncateRunes cuts s to at most n runes. Slicing on runes keeps multi-byte
// Turkish characters intact.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
