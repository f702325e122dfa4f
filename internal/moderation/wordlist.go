package moderation

import (
	_ "embed"
	"strings"
)

// Built-in disallow-list used when no wordlist path is configured.
//
//go:embed wordlist.txt
var embeddedWordlist string

func defaultWordlist() []string {
	return strings.Split(embeddedWordlist, "\n")
}
