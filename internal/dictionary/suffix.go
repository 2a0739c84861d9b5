package dictionary

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HasSuffix reports whether word ends with one of suffixes. With fold set,
// both sides are lowercased with Turkish rules first, so "KILIÇ" folds to
// "kılıç" rather than "kiliç".
func HasSuffix(word string, suffixes []string, fold bool) bool {
	if fold {
		lower := cases.Lower(language.Turkish)
		word = lower.String(word)
		for _, s := range suffixes {
			if s != "" && strings.HasSuffix(word, lower.String(s)) {
				return true
			}
		}
		return false
	}
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(word, s) {
			return true
		}
	}
	return false
}

// WordOf returns the word part of a raw dictionary line without validating
// it, for filters that run before parsing.
func WordOf(line string) string {
	if idx := strings.IndexByte(line, '['); idx >= 0 {
		return strings.TrimSpace(line[:idx])
	}
	return strings.TrimSpace(line)
}
