package search

import (
	"testing"

	"github.com/arama-cloud/arama/internal/domain"
	"github.com/arama-cloud/arama/internal/domain/search/result"
)

func candidatesWithScores(raws ...float64) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(raws))
	for _, r := range raws {
		out = append(out, domain.Candidate{
			RawScore: r,
			Text:     "metin",
			Filename: "dosya.txt",
		})
	}
	return out
}

func finalScores(results []result.Result) []int {
	out := make([]int, 0, len(results))
	for i := range results {
		out = append(out, results[i].FinalScore())
	}
	return out
}

func TestRerank_Empty(t *testing.T) {
	got := Rerank("sorgu", nil, DefaultOptions(false))
	if got != nil {
		t.Fatalf("expected nil for no candidates, got %v", got)
	}
}

func TestRerank_ThresholdKeepsOnlyPassing(t *testing.T) {
	opts := RerankOptions{Threshold: 50, FallbackTopN: 3}
	cands := candidatesWithScores(0.40, 0.55, 0.20, 0.10)

	got := Rerank("sorgu", cands, opts)

	scores := finalScores(got)
	if len(scores) != 1 || scores[0] != 55 {
		t.Fatalf("expected [55], got %v", scores)
	}
	if Fellback(got, opts.Threshold) {
		t.Fatal("threshold was cleared, should not report fallback")
	}
}

func TestRerank_FallbackTopN(t *testing.T) {
	opts := RerankOptions{Threshold: 50, FallbackTopN: 3}
	cands := candidatesWithScores(0.40, 0.30, 0.20, 0.10)

	got := Rerank("sorgu", cands, opts)

	scores := finalScores(got)
	want := []int{40, 30, 20}
	if len(scores) != len(want) {
		t.Fatalf("expected %v, got %v", want, scores)
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, scores)
		}
	}
	if !Fellback(got, opts.Threshold) {
		t.Fatal("expected fallback to be reported")
	}
}

func TestRerank_FallbackShorterThanN(t *testing.T) {
	opts := RerankOptions{Threshold: 90, FallbackTopN: 5}
	cands := candidatesWithScores(0.40, 0.30)

	got := Rerank("sorgu", cands, opts)

	if len(got) != 2 {
		t.Fatalf("expected both candidates back, got %d", len(got))
	}
}

func TestRerank_SortedDescendingStable(t *testing.T) {
	opts := RerankOptions{Threshold: 0, FallbackTopN: 3}
	cands := []domain.Candidate{
		{RawScore: 0.70, Text: "birinci", Filename: "a.txt"},
		{RawScore: 0.90, Text: "ikinci", Filename: "b.txt"},
		{RawScore: 0.70, Text: "üçüncü", Filename: "c.txt"},
	}

	got := Rerank("sorgu", cands, opts)

	if got[0].Text() != "ikinci" {
		t.Fatalf("expected highest score first, got %q", got[0].Text())
	}
	// Equal scores keep original ANN order.
	if got[1].Text() != "birinci" || got[2].Text() != "üçüncü" {
		t.Fatalf("tie-break lost ANN order: %q, %q", got[1].Text(), got[2].Text())
	}
}

func TestRerank_DistanceConvertedToSimilarity(t *testing.T) {
	opts := RerankOptions{Threshold: 0, FallbackTopN: 3}
	cands := candidatesWithScores(1.25)

	got := Rerank("sorgu", cands, opts)

	if got[0].Similarity() != 0 {
		t.Fatalf("distance 1.25 should clamp to similarity 0, got %v", got[0].Similarity())
	}
}

func TestRerank_InRangeValueIsSimilarity(t *testing.T) {
	opts := RerankOptions{Threshold: 0, FallbackTopN: 3}
	cands := candidatesWithScores(0.83)

	got := Rerank("sorgu", cands, opts)

	if got[0].Similarity() != 0.83 {
		t.Fatalf("expected similarity 0.83 passed through, got %v", got[0].Similarity())
	}
	if got[0].FinalScore() != 83 {
		t.Fatalf("expected final score 83 without blending, got %d", got[0].FinalScore())
	}
}

func TestRerank_LexicalBlending(t *testing.T) {
	opts := RerankOptions{Lexical: true, Threshold: 50, FallbackTopN: 5}
	cands := []domain.Candidate{
		{RawScore: 0.80, Text: "kitaplar masada duruyor", Filename: "a.txt"},
	}

	got := Rerank("masa duruyor", cands, opts)

	// Both query stems appear in the candidate: overlap is 100.
	if got[0].OverlapPct() != 100 {
		t.Fatalf("expected 100%% overlap, got %d", got[0].OverlapPct())
	}
	// round(0.6*80 + 0.4*100) = 88
	if got[0].FinalScore() != 88 {
		t.Fatalf("expected blended score 88, got %d", got[0].FinalScore())
	}
}

func TestRerank_SynonymOverlap(t *testing.T) {
	opts := RerankOptions{Lexical: true, Threshold: 0, FallbackTopN: 5}
	cands := []domain.Candidate{
		{RawScore: 0.60, Text: "Dr. Ayşe bir psikiyatristtir", Filename: "a.txt"},
	}

	got := Rerank("doktor", cands, opts)

	// "doktor" expands to "dr", which the candidate contains.
	if got[0].OverlapPct() == 0 {
		t.Fatal("expected synonym expansion to produce lexical overlap")
	}
}

func TestRerank_NoLexicalLeavesOverlapZero(t *testing.T) {
	opts := RerankOptions{Threshold: 0, FallbackTopN: 3}
	cands := []domain.Candidate{
		{RawScore: 0.60, Text: "kitaplar masada", Filename: "a.txt"},
	}

	got := Rerank("kitap", cands, opts)

	if got[0].OverlapPct() != 0 {
		t.Fatalf("embedding-only mode must not compute overlap, got %d", got[0].OverlapPct())
	}
}

func TestDefaultOptions(t *testing.T) {
	emb := DefaultOptions(false)
	if emb.Lexical || emb.Threshold != 60 || emb.FallbackTopN != 3 {
		t.Fatalf("unexpected embedding-only defaults: %+v", emb)
	}
	lex := DefaultOptions(true)
	if !lex.Lexical || lex.Threshold != 50 || lex.FallbackTopN != 5 {
		t.Fatalf("unexpected lexical defaults: %+v", lex)
	}
}
