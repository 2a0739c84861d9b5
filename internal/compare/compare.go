// Package compare relates the entries of two dictionary indexes word by word.
package compare

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/model"
)

// Options narrows the words reported by Compare.
type Options struct {
	// LeftMatch must hold for the left annotations.
	LeftMatch dictionary.Predicate
	// RightMatch must hold for the right annotations. A non-zero RightMatch
	// excludes words missing from the right dictionary.
	RightMatch dictionary.Predicate
	// Relations keeps only the listed relations when non-empty.
	Relations []dictionary.Relation
	// SkipEqual drops words with identical annotations on both sides.
	SkipEqual bool
	// SkipMissing drops words absent from the right dictionary.
	SkipMissing bool
	// OnlyMissing keeps only words absent from the right dictionary.
	OnlyMissing bool
}

// Compare walks the left index in word order and relates each word's
// annotations to the right index.
func Compare(left, right *dictionary.Index, opts Options) []model.WordResult {
	allowed := make(map[dictionary.Relation]bool, len(opts.Relations))
	for _, r := range opts.Relations {
		allowed[r] = true
	}

	var results []model.WordResult
	left.Range(func(word string, leftSet dictionary.AnnotationSet) bool {
		rightSet, _ := right.Lookup(word)
		rel := dictionary.Relate(leftSet, rightSet)
		switch {
		case opts.SkipEqual && rel == dictionary.RelationEqual:
			return true
		case opts.SkipMissing && rel == dictionary.RelationMissing:
			return true
		case opts.OnlyMissing && rel != dictionary.RelationMissing:
			return true
		case len(allowed) > 0 && !allowed[rel]:
			return true
		case !opts.LeftMatch.Match(leftSet):
			return true
		}
		if !opts.RightMatch.IsZero() {
			if rel == dictionary.RelationMissing || !opts.RightMatch.Match(rightSet) {
				return true
			}
		}
		result := model.WordResult{
			Word:     word,
			Left:     leftSet.Sorted(),
			Relation: rel,
		}
		if rightSet != nil {
			result.Right = rightSet.Sorted()
		}
		results = append(results, result)
		return true
	})
	return results
}

// Mirror compares right against left, swapping the side predicates.
func Mirror(left, right *dictionary.Index, opts Options) []model.WordResult {
	opts.LeftMatch, opts.RightMatch = opts.RightMatch, opts.LeftMatch
	return Compare(right, left, opts)
}

// OnlyIn returns the words of left that right does not list.
func OnlyIn(left, right *dictionary.Index) []model.WordResult {
	return Compare(left, right, Options{OnlyMissing: true})
}

// Summarize counts results per relation.
func Summarize(results []model.WordResult) model.Counts {
	counts := model.Counts{}
	for _, r := range results {
		counts[r.Relation]++
	}
	return counts
}

// StatusLine describes a result from the point of view of the left
// dictionary.
func StatusLine(r model.WordResult, leftName, rightName string) string {
	leftMeta := strings.Join(r.Left, ",")
	rightMeta := strings.Join(r.Right, ",")
	switch r.Relation {
	case dictionary.RelationMissing:
		return fmt.Sprintf("%s doesn't have word : %s '%s'", rightName, r.Word, leftMeta)
	case dictionary.RelationEqual:
		return fmt.Sprintf("Same %s line : %s '%s', matching lines in %s : '%s'", leftName, r.Word, leftMeta, rightName, rightMeta)
	case dictionary.RelationSubset:
		return fmt.Sprintf("%s has more info for %s line : %s '%s', matching lines in %s : '%s'", rightName, leftName, r.Word, leftMeta, rightName, rightMeta)
	case dictionary.RelationSuperset:
		return fmt.Sprintf("%s has less info for %s line : %s '%s', matching lines in %s : '%s'", rightName, leftName, r.Word, leftMeta, rightName, rightMeta)
	default:
		return fmt.Sprintf("%s has different info for %s line : %s '%s', matching lines in %s : '%s'", rightName, leftName, r.Word, leftMeta, rightName, rightMeta)
	}
}

// UnifiedDiff renders a unified diff between two line slices.
func UnifiedDiff(a, b []string, nameA, nameB string, context int) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: nameA,
		ToFile:   nameB,
		Context:  context,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to render diff: %w", err)
	}
	return out, nil
}

func withNewlines(in []string) []string {
	out := make([]string, len(in))
	for i, line := range in {
		out[i] = line + "\n"
	}
	return out
}
