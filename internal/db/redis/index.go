package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/arama-cloud/arama/internal/db"
)

// CreateIndex issues FT.CREATE for the given definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	args, err := createIndexArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// DropIndex removes an FT index. With dropDocs the indexed documents are
// deleted along with it (FT.DROPINDEX ... DD).
func (s *Store) DropIndex(ctx context.Context, name string, dropDocs bool) error {
	args := []string{name}
	if dropDocs {
		args = append(args, "DD")
	}

	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists probes via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// createIndexArgs flattens an IndexDefinition into FT.CREATE argument order:
// name, storage, prefixes, then the SCHEMA field list.
func createIndexArgs(def *db.IndexDefinition) ([]string, error) {
	storage := def.StorageType
	if storage == "" {
		storage = db.StorageHash
	}

	args := []string{def.Name, "ON", string(storage)}

	if len(def.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(def.Prefixes)))
		args = append(args, def.Prefixes...)
	}

	args = append(args, "SCHEMA")

	for i := range def.Fields {
		f := &def.Fields[i]
		args = append(args, f.Name)
		if f.Alias != "" {
			args = append(args, "AS", f.Alias)
		}

		switch f.Type {
		case db.IndexFieldTag:
			args = append(args, "TAG")
		case db.IndexFieldVector:
			vargs, err := vectorFieldArgs(f)
			if err != nil {
				return nil, err
			}
			args = append(args, vargs...)
		default:
			return nil, errors.New("unknown field type")
		}
	}

	return args, nil
}

// vectorFieldArgs emits the VECTOR schema clause: algorithm, attribute
// count, then TYPE/DIM/DISTANCE_METRIC plus HNSW tunables when set.
func vectorFieldArgs(f *db.IndexField) ([]string, error) {
	if f.VectorDim <= 0 {
		return nil, errors.New("vector DIM must be positive")
	}

	algo := f.VectorAlgo
	if algo == "" {
		algo = db.VectorFlat
	}
	distance := f.VectorDistance
	if distance == "" {
		distance = db.DistanceCosine
	}

	attrs := []string{
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(f.VectorDim),
		"DISTANCE_METRIC", string(distance),
	}
	if algo == db.VectorHNSW {
		if f.VectorM > 0 {
			attrs = append(attrs, "M", strconv.Itoa(f.VectorM))
		}
		if f.VectorEFConstruct > 0 {
			attrs = append(attrs, "EF_CONSTRUCTION", strconv.Itoa(f.VectorEFConstruct))
		}
	}

	out := append([]string{"VECTOR", string(algo), strconv.Itoa(len(attrs))}, attrs...)
	return out, nil
}
