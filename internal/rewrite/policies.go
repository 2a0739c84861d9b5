package rewrite

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/lexsync/internal/dictionary"
)

func isComment(stripped string) bool {
	return strings.HasPrefix(stripped, "#")
}

// RemoveLines drops lines whose stripped text equals one of targets.
func RemoveLines(targets []string) Func {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[strings.TrimSpace(t)] = struct{}{}
	}
	return func(line string) (Action, error) {
		if _, ok := set[strings.TrimSpace(line)]; ok {
			return Drop, nil
		}
		return Keep, nil
	}
}

// RemoveWords drops entries whose word is listed. Comment and blank lines
// are kept.
func RemoveWords(words []string) Func {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.TrimSpace(w)] = struct{}{}
	}
	return func(line string) (Action, error) {
		stripped := strings.TrimSpace(line)
		if stripped == "" || isComment(stripped) {
			return Keep, nil
		}
		if _, ok := set[dictionary.WordOf(stripped)]; ok {
			return Drop, nil
		}
		return Keep, nil
	}
}

// RemoveSuffixes drops entries whose word ends with one of suffixes.
// Comment and blank lines are kept.
func RemoveSuffixes(suffixes []string, fold bool) Func {
	return func(line string) (Action, error) {
		stripped := strings.TrimSpace(line)
		if stripped == "" || isComment(stripped) {
			return Keep, nil
		}
		if dictionary.HasSuffix(dictionary.WordOf(stripped), suffixes, fold) {
			return Drop, nil
		}
		return Keep, nil
	}
}

// AddTag appends tag to the annotation of every entry whose word is listed.
// Leading indentation of a tagged line is kept and trailing whitespace is
// dropped. A malformed entry line stops the rewrite.
func AddTag(words []string, tag string) Func {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return func(line string) (Action, error) {
		stripped := strings.TrimSpace(line)
		if stripped == "" || isComment(stripped) {
			return Keep, nil
		}
		entry, err := dictionary.ParseLine(stripped)
		if err != nil {
			return Keep, err
		}
		if _, ok := set[entry.Word]; !ok {
			return Keep, nil
		}
		tagged := entry.WithTag(tag)
		if tagged == entry {
			return Keep, nil
		}
		indent := line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
		return Replace(indent + tagged.String()), nil
	}
}
