package compare

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/lexsync/internal/dictionary"
)

// Finding is a word that failed an expectation check.
type Finding struct {
	Word    string
	Missing bool
	Left    dictionary.AnnotationSet
	Right   dictionary.AnnotationSet
}

// CollapseTo builds a replacement map that rewrites each of from into to.
func CollapseTo(from []string, to string) map[string]string {
	m := make(map[string]string, len(from))
	for _, f := range from {
		m[f] = to
	}
	return m
}

// Expect checks that every listed word is present in idx and, after
// collapsing, satisfies want. Words are checked once each, in input order.
func Expect(idx *dictionary.Index, words []string, want dictionary.Predicate, collapse map[string]string) []Finding {
	var findings []Finding
	for _, word := range dedupe(words) {
		set, ok := idx.Lookup(word)
		if !ok {
			findings = append(findings, Finding{Word: word, Missing: true})
			continue
		}
		set = set.Collapse(collapse)
		if !want.Match(set) {
			findings = append(findings, Finding{Word: word, Left: set})
		}
	}
	return findings
}

// ExpectSame checks that every listed word carries the same annotations in
// both indexes after collapsing. Words missing from left are skipped since
// Expect already reports them; words missing only from right are reported
// with an empty Right.
func ExpectSame(left, right *dictionary.Index, words []string, collapse map[string]string) []Finding {
	var findings []Finding
	for _, word := range dedupe(words) {
		l, ok := left.Lookup(word)
		if !ok {
			continue
		}
		l = l.Collapse(collapse)
		r, _ := right.Lookup(word)
		r = r.Collapse(collapse)
		if !l.Equal(r) {
			findings = append(findings, Finding{Word: word, Left: l, Right: r})
		}
	}
	return findings
}

// Describe renders a finding as a report line.
func (f Finding) Describe(want dictionary.Predicate, leftName, rightName string) string {
	switch {
	case f.Missing:
		return fmt.Sprintf("Word %q is not in the dictionary", f.Word)
	case f.Right != nil:
		return fmt.Sprintf("Word %q differs in %s {%s} and %s {%s}", f.Word, leftName, f.Left, rightName, f.Right)
	default:
		return fmt.Sprintf("Word %q is not %s, but {%s}", f.Word, strings.Join(want.Has, " and "), f.Left)
	}
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
