package collection

import (
	"github.com/arama-cloud/arama/internal/db"
)

// buildIndex creates the FT index definition for a collection: a TAG field
// for the source filename and an HNSW/COSINE vector field, scoped to the
// collection's key prefix.
func buildIndex(name string, vectorDim int, hnsw HNSWConfig) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:        indexName(name),
		StorageType: db.StorageHash,
		Prefixes:    []string{collectionPrefix(name)},
		Fields: []db.IndexField{
			{
				Name: "filename",
				Type: db.IndexFieldTag,
			},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnsw.M,
				VectorEFConstruct: hnsw.EFConstruct,
			},
		},
	}
}
