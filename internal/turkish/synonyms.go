package turkish

// synonyms maps a stemmed, folded term to the stemmed terms it expands to.
// Entries are directional: expansion follows the table as written and is not
// assumed to be group-symmetric. Keys and members must be fixed points of
// Stem (verified by tests).
var synonyms = map[string][]string{
	"doktor":   {"hekim", "dr"},
	"hekim":    {"doktor", "dr"},
	"dr":       {"doktor", "hekim"},
	"hastane":  {"klinik"},
	"klinik":   {"hastane"},
	"ilac":     {"deva"},
	"araba":    {"otomobil", "arac"},
	"otomobil": {"araba", "arac"},
	"ev":       {"konut"},
	"konut":    {"ev"},
	"is":       {"meslek"},
	"okul":     {"mektep"},
	"kitap":    {"eser"},
	"para":     {"ucret"},
	"yemek":    {"yiyecek"},
	"cocuk":    {"bebek"},
}

// lexicon holds every synonym key and member. Terms in it survive the short
// token-length filter in TokenSet.
var lexicon = buildLexicon()

func buildLexicon() map[string]struct{} {
	set := make(map[string]struct{}, len(synonyms)*2)
	for key, members := range synonyms {
		set[key] = struct{}{}
		for _, m := range members {
			set[m] = struct{}{}
		}
	}
	return set
}

func isLexiconTerm(term string) bool {
	_, ok := lexicon[term]
	return ok
}

// ExpandSynonyms returns a new set containing tokens plus the synonym members
// of every token that has a table entry.
func ExpandSynonyms(tokens map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(tokens))
	for tok := range tokens {
		expanded[tok] = struct{}{}
		for _, member := range synonyms[tok] {
			expanded[member] = struct{}{}
		}
	}
	return expanded
}
