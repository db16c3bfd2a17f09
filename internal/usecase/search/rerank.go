package search

import (
	"math"
	"sort"

	"github.com/arama-cloud/arama/internal/domain"
	"github.com/arama-cloud/arama/internal/domain/search/result"
	"github.com/arama-cloud/arama/internal/turkish"
)

// Blend weights for the final score when lexical blending is active.
const (
	embedWeight   = 0.6
	lexicalWeight = 0.4
)

// RerankOptions tune threshold filtering and fallback behavior.
// The two deployed variants differ here (60/3 embedding-only vs 50/5
// blended), so both stay configurable.
type RerankOptions struct {
	// Lexical enables blending stemmed token overlap into the final score.
	Lexical bool
	// Threshold is the minimum final score a result must reach.
	Threshold int
	// FallbackTopN is how many top results to return when nothing clears
	// the threshold.
	FallbackTopN int
}

// DefaultOptions returns the deployed defaults for the given mode:
// blended scoring runs with the lower threshold and the wider fallback.
func DefaultOptions(lexical bool) RerankOptions {
	if lexical {
		return RerankOptions{Lexical: true, Threshold: 50, FallbackTopN: 5}
	}
	return RerankOptions{Threshold: 60, FallbackTopN: 3}
}

// Rerank scores raw ANN candidates against the query and applies the
// threshold/fallback policy. Candidates keep their ANN rank as tie-break, so
// sorting is stable.
func Rerank(query string, candidates []domain.Candidate, opts RerankOptions) []result.Result {
	if len(candidates) == 0 {
		return nil
	}

	queryTokens := turkish.ExpandSynonyms(turkish.TokenSet(query))

	scored := make([]result.Result, 0, len(candidates))
	for _, c := range candidates {
		similarity := normalizeScore(c.RawScore)
		scorePct := int(math.Round(similarity * 100))

		overlapPct := 0
		finalScore := scorePct
		if opts.Lexical {
			overlapPct = overlapPercent(queryTokens, turkish.TokenSet(c.Text))
			finalScore = int(math.Round(embedWeight*float64(scorePct) + lexicalWeight*float64(overlapPct)))
		}

		scored = append(scored, result.New(c.Filename, c.Text, similarity, overlapPct, finalScore))
	}

	kept := make([]result.Result, 0, len(scored))
	for _, r := range scored {
		if r.FinalScore() >= opts.Threshold {
			kept = append(kept, r)
		}
	}

	// Nothing cleared the bar: surface the best few instead of an empty page.
	if len(kept) == 0 {
		sortByScore(scored)
		n := opts.FallbackTopN
		if n > len(scored) {
			n = len(scored)
		}
		return scored[:n]
	}

	sortByScore(kept)
	return kept
}

// Fellback reports whether a rerank over the given candidates had to bypass
// the threshold. True exactly when candidates existed but none reached it.
func Fellback(results []result.Result, threshold int) bool {
	return len(results) > 0 && results[0].FinalScore() < threshold
}

// normalizeScore converts the store's raw metric value to a similarity in
// [0,1]. Values already in range are similarities; anything else is a
// distance and maps through clamp(1-raw, 0, 1). The same metric name can
// mean either depending on the store configuration.
func normalizeScore(raw float64) float64 {
	if raw >= 0 && raw <= 1 {
		return raw
	}
	sim := 1 - raw
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// overlapPercent is the share of expanded query tokens present in the
// candidate's token set, as an integer percentage. Empty query set scores 0.
func overlapPercent(queryTokens, docTokens map[string]struct{}) int {
	if len(queryTokens) == 0 {
		return 0
	}
	matched := 0
	for tok := range queryTokens {
		if _, ok := docTokens[tok]; ok {
			matched++
		}
	}
	return int(math.Round(100 * float64(matched) / float64(len(queryTokens))))
}

func sortByScore(results []result.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore() > results[j].FinalScore()
	})
}
