// Package turkish provides locale-aware normalization, heuristic suffix
// stemming, and static synonym expansion for Turkish text. It is the one
// place where language-specific tuning lives; the scoring pipeline only
// consumes token sets.
package turkish

import (
	"strings"
	"unicode"
)

// foldTable maps Turkish diacritics to their base Latin letters.
// Applied after Turkish-aware lowercasing, so only lowercase forms appear.
var foldTable = map[rune]rune{
	'ç': 'c',
	'ğ': 'g',
	'ı': 'i',
	'ö': 'o',
	'ş': 's',
	'ü': 'u',
	'â': 'a',
	'î': 'i',
	'û': 'u',
}

// Normalize lowercases s with Turkish casing rules (I→ı, İ→i) and folds
// diacritics to base Latin letters.
func Normalize(s string) string {
	lowered := strings.ToLowerSpecial(unicode.TurkishCase, s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if folded, ok := foldTable[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokenize normalizes s and splits it on non-letter, non-digit boundaries.
// No length filtering happens here; see TokenSet.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// TokenSet tokenizes, stems, and filters text into a set of match terms.
// Tokens whose stem is 2 runes or shorter are discarded unless they are known
// lexicon terms (synonym keys or members such as "dr" and "ev"), which would
// otherwise be unreachable by expansion.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		stem := Stem(tok)
		if len([]rune(stem)) <= 2 && !isLexiconTerm(stem) {
			continue
		}
		set[stem] = struct{}{}
	}
	return set
}
