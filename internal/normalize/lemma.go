package normalize

import "strings"

// irregularNouns maps irregular plurals to their base form, plus a few
// identity entries for words the suffix rules would otherwise mangle.
var irregularNouns = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"feet":     "foot",
	"teeth":    "tooth",
	"geese":    "goose",
	"mice":     "mouse",
	"lice":     "louse",
	"oxen":     "ox",
	"dice":     "die",
	"pence":    "penny",
	"indices":  "index",
	"matrices": "matrix",
	"crises":   "crisis",
	"analyses": "analysis",
	"theses":   "thesis",

	// Stable under lemmatization.
	"species": "species",
	"series":  "series",
	"news":    "news",
	"means":   "means",
}

// singularS lists s-final words that are already base forms. Morphy only
// accepts a stripped stem when the stem exists in the dictionary; without
// the full dictionary embedded, this curated set keeps the common singulars
// the suffix rules would otherwise over-strip ("gas" -> "ga").
var singularS = map[string]struct{}{
	"gas":       {},
	"bias":      {},
	"lens":      {},
	"canvas":    {},
	"alias":     {},
	"atlas":     {},
	"yes":       {},
	"chaos":     {},
	"cosmos":    {},
	"ethos":     {},
	"pathos":    {},
	"thanks":    {},
	"clothes":   {},
	"molasses":  {},
	"measles":   {},
	"summons":   {},
	"christmas": {},
}

// detachment is an ordered WordNet-style suffix substitution table for
// nouns. The first matching rule wins.
var detachment = []struct {
	suffix  string
	replace string
}{
	{"sses", "ss"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"xes", "x"},
	{"zes", "z"},
	{"ies", "y"},
	{"s", ""},
}

// minStemLen guards against stripping short words ("is", "as") down to
// nothing meaningful.
const minStemLen = 2

// Lemmatize reduces a lower-cased word token to its dictionary base form
// using WordNet morphy noun detachment rules. Tokens that match no rule are
// returned unchanged; the output is always a fixed point of Lemmatize.
func Lemmatize(tok string) string {
	if base, ok := irregularNouns[tok]; ok {
		return base
	}
	if _, ok := singularS[tok]; ok {
		return tok
	}

	for _, rule := range detachment {
		if !strings.HasSuffix(tok, rule.suffix) {
			continue
		}
		stem := tok[:len(tok)-len(rule.suffix)] + rule.replace
		if len(stem) < minStemLen {
			return tok
		}
		if rule.suffix == "s" && keepsFinalS(tok) {
			return tok
		}
		return stem
	}

	return tok
}

// keepsFinalS reports whether a word ending in a bare "s" should be left
// alone: "ss", "us" and "is" endings are singular forms, not plurals.
func keepsFinalS(tok string) bool {
	return strings.HasSuffix(tok, "ss") ||
		strings.HasSuffix(tok, "us") ||
		strings.HasSuffix(tok, "is")
}
