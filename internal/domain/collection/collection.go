// Package collection holds the collection aggregate: a named set of documents
// sharing one vector index with a fixed dimension.
package collection

import (
	"fmt"
	"regexp"
	"time"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Collection is the collection metadata (immutable value object).
type Collection struct {
	name      string
	vectorDim int
	createdAt int64
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(name) > 64 {
		return fmt.Errorf("collection name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("collection name must be alphanumeric with underscores and hyphens")
	}
	return nil
}

// New validates and creates a Collection.
// Name: ^[a-zA-Z0-9_-]+$, 1-64 chars. VectorDim: > 0.
func New(name string, vectorDim int) (Collection, error) {
	if err := validateName(name); err != nil {
		return Collection{}, err
	}
	if vectorDim <= 0 {
		return Collection{}, fmt.Errorf("vector dimension must be positive")
	}

	return Collection{
		name:      name,
		vectorDim: vectorDim,
		createdAt: time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Collection without validation (storage hydration).
func Reconstruct(name string, vectorDim int, createdAt int64) Collection {
	return Collection{
		name:      name,
		vectorDim: vectorDim,
		createdAt: createdAt,
	}
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// VectorDim returns the vector dimension of the collection's index.
func (c Collection) VectorDim() int { return c.vectorDim }

// CreatedAt returns the creation timestamp (unix millis).
func (c Collection) CreatedAt() int64 { return c.createdAt }
