package domain

// Document is the persisted unit of the collection. Created on ingest, never
// mutated; removed only when the whole collection is dropped during
// reconciliation.
type Document struct {
	ID       int64 // store-assigned, unique, immutable
	Text     string
	Filename string
	Vector   []float32 // exactly the collection's declared dimension
}

// Candidate is one raw ANN hit before reranking. RawScore is the store's
// native metric value, passed through untouched; the reranker owns the
// similarity conversion.
type Candidate struct {
	RawScore float64
	Text     string
	Filename string
}
