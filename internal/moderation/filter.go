// Package moderation rejects text containing disallowed terms. The wordlist
// is compiled once at startup into an immutable Aho-Corasick matcher;
// matching is a pure predicate, safe to share without locking.
package moderation

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Filter holds the compiled disallow-list. Read-only after construction.
type Filter struct {
	matcher *ahocorasick.Matcher
	terms   int
}

// New compiles a filter from a list of disallowed terms. Terms match
// case-insensitively as substrings anywhere in the text; any single match
// flags the whole text.
func New(terms []string) *Filter {
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || strings.HasPrefix(term, "#") {
			continue
		}
		normalized = append(normalized, term)
	}

	var matcher *ahocorasick.Matcher
	if len(normalized) > 0 {
		matcher = ahocorasick.NewStringMatcher(normalized)
	}

	return &Filter{matcher: matcher, terms: len(normalized)}
}

// Load reads a wordlist resource (one term per line, "#" comments) and
// compiles it. An empty path loads the built-in default list.
func Load(path string) (*Filter, error) {
	if path == "" {
		return New(defaultWordlist()), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist %s: %w", path, err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		terms = append(terms, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist %s: %w", path, err)
	}

	return New(terms), nil
}

// Flagged reports whether text contains any disallowed term.
func (f *Filter) Flagged(text string) bool {
	if f.matcher == nil {
		return false
	}
	return f.matcher.Contains([]byte(strings.ToLower(text)))
}

// TermCount returns the number of compiled terms.
func (f *Filter) TermCount() int {
	return f.terms
}
