package collection

import (
	"fmt"
	"strconv"

	"github.com/arama-cloud/arama/internal/domain/collection"
)

// collectionToHash converts a domain Collection to a map for HSET.
func collectionToHash(col collection.Collection) map[string]string {
	return map[string]string{
		"name":       col.Name(),
		"vector_dim": strconv.Itoa(col.VectorDim()),
		"created_at": strconv.FormatInt(col.CreatedAt(), 10),
	}
}

// collectionFromHash hydrates a domain Collection from an HGETALL result map.
func collectionFromHash(m map[string]string) (collection.Collection, error) {
	name := m["name"]

	vectorDim, err := strconv.Atoi(m["vector_dim"])
	if err != nil {
		return collection.Collection{}, fmt.Errorf("invalid vector_dim: %w", err)
	}

	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return collection.Collection{}, fmt.Errorf("invalid created_at: %w", err)
	}

	return collection.Reconstruct(name, vectorDim, createdAt), nil
}
