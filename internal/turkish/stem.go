package turkish

// suffixes is the closed inflectional suffix set, in folded (post-Normalize)
// form, ordered longest first. Ordering is load-bearing: the stemmer strips
// the first match and stops.
var suffixes = []string{
	// plural + case combinations
	"larindan", "lerinden",
	"larinda", "lerinde",
	"lardan", "lerden",
	"indan", "inden", "undan", "unden",
	"larda", "lerde",
	"larin", "lerin",
	"inda", "inde", "unda", "unde",
	"lari", "leri",
	"lara", "lere",
	// plural, copula, ablative/locative, genitive
	"lar", "ler",
	"dir", "dur", "tir", "tur",
	"dan", "den", "tan", "ten",
	"nin", "nun",
	"da", "de", "ta", "te",
	"in", "un",
	// accusative vowel
	"i", "u",
}

// minStemLen guards against over-stripping: a suffix is removed only when the
// remaining stem keeps at least this many runes.
const minStemLen = 3

// Stem strips the longest matching inflectional suffix from a normalized
// token. At most one suffix is removed; the table carries compound entries
// (plural+case stacks) so stacked inflections still resolve in one strip,
// and a second pass could over-strip stems that merely end like a suffix.
// A strip is taken only if the remaining stem has at least minStemLen
// runes, so short tokens like "ev" pass through unchanged.
func Stem(token string) string {
	runes := []rune(token)
	for _, suffix := range suffixes {
		sufRunes := []rune(suffix)
		if len(runes)-len(sufRunes) < minStemLen {
			continue
		}
		if string(runes[len(runes)-len(sufRunes):]) == suffix {
			return string(runes[:len(runes)-len(sufRunes)])
		}
	}
	return token
}
