package db

import (
	"errors"
	"strconv"
)

// StorageType selects where FT indexes read document data from.
type StorageType string

// StorageHash indexes Redis hashes, the only storage this facade uses.
const StorageHash StorageType = "HASH"

// DistanceMetric is the similarity metric of a vector field.
type DistanceMetric string

const (
	// DistanceCosine is cosine distance, 0 identical to 2 opposite.
	DistanceCosine DistanceMetric = "COSINE"
	// DistanceL2 is Euclidean distance.
	DistanceL2 DistanceMetric = "L2"
)

// VectorAlgorithm selects how a vector field is indexed.
type VectorAlgorithm string

const (
	// VectorHNSW builds a hierarchical navigable small world graph.
	VectorHNSW VectorAlgorithm = "HNSW"
	// VectorFlat brute-forces every stored vector.
	VectorFlat VectorAlgorithm = "FLAT"
)

// IndexFieldType enumerates the field kinds this facade supports.
type IndexFieldType int

const (
	// IndexFieldTag is an exact-match tag field.
	IndexFieldTag IndexFieldType = iota
	// IndexFieldVector is a KNN-searchable vector field.
	IndexFieldVector
)

// IndexField describes one field in an FT index schema.
type IndexField struct {
	Name  string
	Alias string // AS alias in FT.CREATE SCHEMA
	Type  IndexFieldType

	// VECTOR options
	VectorAlgo        VectorAlgorithm
	VectorDim         int
	VectorDistance    DistanceMetric
	VectorM           int // HNSW M parameter: max edges per node
	VectorEFConstruct int // HNSW EF_CONSTRUCTION: build-time dynamic list size
}

// IndexDefinition is everything FT.CREATE needs for one index.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}

// Validate rejects definitions the server would refuse: missing names,
// empty schemas, duplicate field names or aliases, vector fields without
// a positive dimension.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]struct{}, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}

		key := f.Name
		if f.Alias != "" {
			key = f.Alias
		}
		if _, dup := seen[key]; dup {
			return errors.New("duplicate field name: " + key)
		}
		seen[key] = struct{}{}

		if f.Type == IndexFieldVector && f.VectorDim <= 0 {
			return errors.New("vector field requires positive DIM")
		}
	}

	return nil
}
