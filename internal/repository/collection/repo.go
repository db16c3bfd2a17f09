// Package collection persists collection metadata and manages the backing
// vector index lifecycle.
package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/arama-cloud/arama/internal/db"
	"github.com/arama-cloud/arama/internal/domain"
	domcol "github.com/arama-cloud/arama/internal/domain/collection"
)

// store is the consumer interface for collections (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, dropDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the collection repository over the hash + FT index store.
type Repo struct {
	store store
	hnsw  HNSWConfig
}

// New creates a collection repository.
func New(s store) *Repo {
	return &Repo{store: s, hnsw: HNSWConfig{M: 32, EFConstruct: 400}}
}

// WithHNSW configures HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// Has reports whether the collection metadata exists.
func (r *Repo) Has(ctx context.Context, name string) (bool, error) {
	exists, err := r.store.Exists(ctx, metaKey(name))
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	return exists, nil
}

// Describe retrieves collection metadata by name.
func (r *Repo) Describe(ctx context.Context, name string) (domcol.Collection, error) {
	m, err := r.store.HGetAll(ctx, metaKey(name))
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("hgetall collection %s: %w", name, err)
	}
	if len(m) == 0 {
		return domcol.Collection{}, domain.ErrNotFound
	}

	return collectionFromHash(m)
}

// Create stores a collection: HSET metadata then FT.CREATE index.
// On FT.CREATE failure, rolls back the HSET via DEL.
func (r *Repo) Create(ctx context.Context, col domcol.Collection) error {
	name := col.Name()

	metaKey := metaKey(name)
	exists, err := r.store.Exists(ctx, metaKey)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	indexDef := buildIndex(name, col.VectorDim(), r.hnsw)

	if err := r.store.HSet(ctx, metaKey, collectionToHash(col)); err != nil {
		return fmt.Errorf("hset collection %s: %w", name, err)
	}

	// Roll back the meta hash if index creation fails.
	if err := r.store.CreateIndex(ctx, indexDef); err != nil {
		cleanupErr := r.store.Del(ctx, metaKey)
		return errors.Join(err, cleanupErr)
	}

	return nil
}

// Drop removes a collection and everything under it: FT.DROPINDEX DD deletes
// the index together with all indexed document hashes, then the metadata
// hash and the id counter go.
func (r *Repo) Drop(ctx context.Context, name string) error {
	metaBackup, err := r.store.HGetAll(ctx, metaKey(name))
	if err != nil {
		return fmt.Errorf("hgetall collection %s: %w", name, err)
	}
	if len(metaBackup) == 0 {
		return domain.ErrNotFound
	}

	if err := r.store.DropIndex(ctx, indexName(name), true); err != nil {
		if !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index %s: %w", indexName(name), err)
		}
		// The index is gone, so DD deleted nothing. Sweep stray document
		// hashes under the prefix explicitly.
		if err := r.sweepPrefix(ctx, collectionPrefix(name)); err != nil {
			return fmt.Errorf("sweep collection %s: %w", name, err)
		}
	}

	if err := r.store.Del(ctx, metaKey(name), counterKey(name)); err != nil {
		return fmt.Errorf("del collection %s: %w", name, err)
	}

	return nil
}

// sweepPrefix deletes every key under the given prefix.
func (r *Repo) sweepPrefix(ctx context.Context, prefix string) error {
	keys, err := r.store.Scan(ctx, prefix+"*")
	if err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("del %d keys: %w", len(keys), err)
	}
	return nil
}

// Load verifies the collection's index is present and queryable, mirroring
// an explicit load step before serving searches.
func (r *Repo) Load(ctx context.Context, name string) error {
	exists, err := r.store.IndexExists(ctx, indexName(name))
	if err != nil {
		return fmt.Errorf("check index %s: %w", indexName(name), err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// Store key patterns: arama:collection:{name}, arama:{name}:idx, arama:{name}:,
// arama:meta:{name}:next_id

func metaKey(name string) string {
	return fmt.Sprintf("%scollection:%s", domain.KeyPrefix, name)
}

func indexName(name string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, name)
}

func collectionPrefix(name string) string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, name)
}

// counterKey sits under arama:meta:, outside the indexed prefix, and must
// match the document repository's key shape.
func counterKey(name string) string {
	return fmt.Sprintf("%smeta:%s:next_id", domain.KeyPrefix, name)
}
