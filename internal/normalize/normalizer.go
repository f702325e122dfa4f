// Package normalize turns raw post text into its canonical token string:
// case-folded, tokenized, stopwords and non-alphabetic tokens removed, each
// surviving token reduced to its dictionary base form.
//
// The transform is deterministic and idempotent: running it on its own
// output yields the same string.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalizer is an immutable, stateless text normalizer. Construct once and
// share freely; it holds no mutable state.
type Normalizer struct {
	folder    cases.Caser
	stopwords map[string]struct{}
}

// New creates a Normalizer with the built-in English stopword list.
func New() *Normalizer {
	return &Normalizer{
		folder:    cases.Fold(),
		stopwords: englishStopwords(),
	}
}

// Normalize produces the canonical token string for text. Surviving tokens
// keep their original relative order and are joined with single spaces.
func (n *Normalizer) Normalize(text string) string {
	folded := n.folder.String(strings.TrimSpace(text))

	tokens := tokenize(folded)

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if n.isStopword(tok) || !isAlphabetic(tok) {
			continue
		}
		lemma := Lemmatize(tok)
		// A lemma can itself be a stopword ("dos" -> "do"); dropping it
		// here keeps Normalize idempotent.
		if n.isStopword(lemma) {
			continue
		}
		out = append(out, lemma)
	}

	return strings.Join(out, " ")
}

func (n *Normalizer) isStopword(tok string) bool {
	_, ok := n.stopwords[tok]
	return ok
}

// tokenize splits text into maximal runs of letters and digits. Digits are
// kept at this stage so that tokens like "p0rn" survive as a unit and are
// rejected whole by the alphabetic filter.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// isAlphabetic reports whether every rune in tok is a letter.
func isAlphabetic(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
