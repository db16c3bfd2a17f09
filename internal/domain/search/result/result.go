// Package result defines the reranked search hit value object.
package result

// Label is one of four ordinal similarity bands.
type Label string

const (
	// LabelVerySimilar covers final scores >= 85.
	LabelVerySimilar Label = "çok benzer"
	// LabelSimilar covers final scores in [70, 85).
	LabelSimilar Label = "benzer"
	// LabelPartiallySimilar covers final scores in [60, 70).
	LabelPartiallySimilar Label = "kısmen benzer"
	// LabelLowSimilarity covers final scores below 60.
	LabelLowSimilarity Label = "düşük benzerlik"
)

// ForScore maps a final score in [0, 100] to its label band.
// Bands are total and non-overlapping with inclusive lower bounds at 60/70/85.
func ForScore(finalScore int) Label {
	switch {
	case finalScore >= 85:
		return LabelVerySimilar
	case finalScore >= 70:
		return LabelSimilar
	case finalScore >= 60:
		return LabelPartiallySimilar
	default:
		return LabelLowSimilarity
	}
}

// Result is a single reranked search hit (immutable value object).
type Result struct {
	filename   string
	text       string
	similarity float64 // embedding similarity in [0, 1]
	overlapPct int     // lexical overlap in [0, 100]
	finalScore int     // blended score in [0, 100]
	label      Label
}

// New creates a search result. The label is derived from finalScore.
func New(filename, text string, similarity float64, overlapPct, finalScore int) Result {
	return Result{
		filename:   filename,
		text:       text,
		similarity: similarity,
		overlapPct: overlapPct,
		finalScore: finalScore,
		label:      ForScore(finalScore),
	}
}

// Filename returns the provenance label of the matched document.
func (r *Result) Filename() string { return r.filename }

// Text returns the matched document content.
func (r *Result) Text() string { return r.text }

// Similarity returns the embedding similarity in [0, 1].
func (r *Result) Similarity() float64 { return r.similarity }

// OverlapPct returns the lexical overlap percentage in [0, 100].
func (r *Result) OverlapPct() int { return r.overlapPct }

// FinalScore returns the blended score in [0, 100].
func (r *Result) FinalScore() int { return r.finalScore }

// Label returns the similarity band for the final score.
func (r *Result) Label() Label { return r.label }
