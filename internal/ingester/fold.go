package ingester

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining diacritical marks so keyword matching treats
// "Montréal" and "Montreal" as the same word. Decompose, drop the marks,
// recompose.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// foldForMatch lower-cases and accent-folds text for keyword comparison.
func foldForMatch(s string) string {
	return strings.ToLower(foldAccents(s))
}
