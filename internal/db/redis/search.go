package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/arama-cloud/arama/internal/db"
)

// SearchKNN runs a KNN vector similarity search via FT.SEARCH, ordered by
// ascending __vector_score and limited to K hits.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	args := []string{q.IndexName, fmt.Sprintf("*=>[KNN %d @vector $BLOB]", q.K)}
	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}
	args = append(args,
		"SORTBY", "__vector_score",
		"LIMIT", "0", strconv.Itoa(q.K),
		"PARAMS", "2", "BLOB", encodeVectorBlob(q.Vector),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	reply, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return decodeSearchReply(reply)
}

// decodeSearchReply walks the RESP2 FT.SEARCH array:
// [total, key1, fields1, key2, fields2, ...].
func decodeSearchReply(reply []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(reply) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := reply[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	for i := 1; i+1 < len(reply); i += 2 {
		key, err := reply[i].ToString()
		if err != nil {
			continue
		}
		fieldMsgs, err := reply[i+1].ToArray()
		if err != nil {
			continue
		}

		entry := db.SearchEntry{Key: key, Fields: fieldMap(fieldMsgs)}

		// The raw __vector_score is surfaced as-is; callers decide how
		// to interpret it for the configured distance metric.
		if scoreStr, ok := entry.Fields["__vector_score"]; ok {
			if v, err := strconv.ParseFloat(scoreStr, 64); err == nil {
				entry.Score = v
			}
			delete(entry.Fields, "__vector_score")
		}

		entries = append(entries, entry)
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

// fieldMap converts an alternating name/value message list into a map,
// skipping entries that fail to decode.
func fieldMap(msgs []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(msgs)/2)
	for j := 0; j+1 < len(msgs); j += 2 {
		name, err := msgs[j].ToString()
		if err != nil {
			continue
		}
		value, err := msgs[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// encodeVectorBlob packs a []float32 into the little-endian byte string
// the PARAMS BLOB argument expects.
func encodeVectorBlob(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
