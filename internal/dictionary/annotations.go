package dictionary

import (
	"sort"
	"strings"
)

// AnnotationSet holds the distinct annotations seen for one word.
type AnnotationSet map[string]struct{}

// NewAnnotationSet returns a set holding the given annotations.
func NewAnnotationSet(annotations ...string) AnnotationSet {
	set := make(AnnotationSet, len(annotations))
	for _, a := range annotations {
		set[a] = struct{}{}
	}
	return set
}

// Add inserts an annotation.
func (s AnnotationSet) Add(annotation string) {
	s[annotation] = struct{}{}
}

// Has reports whether the exact annotation is in the set.
func (s AnnotationSet) Has(annotation string) bool {
	_, ok := s[annotation]
	return ok
}

// Len returns the number of distinct annotations.
func (s AnnotationSet) Len() int {
	return len(s)
}

// Sorted returns the annotations in lexical order.
func (s AnnotationSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted annotations with commas.
func (s AnnotationSet) String() string {
	return strings.Join(s.Sorted(), ",")
}

// ContainsTag reports whether any annotation contains substr.
func (s AnnotationSet) ContainsTag(substr string) bool {
	for a := range s {
		if strings.Contains(a, substr) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same annotations.
func (s AnnotationSet) Equal(other AnnotationSet) bool {
	if len(s) != len(other) {
		return false
	}
	return s.subsetOf(other)
}

// Collapse returns a copy of the set where every annotation found in
// replacements is swapped for its replacement value.
func (s AnnotationSet) Collapse(replacements map[string]string) AnnotationSet {
	out := make(AnnotationSet, len(s))
	for a := range s {
		if r, ok := replacements[a]; ok {
			out[r] = struct{}{}
			continue
		}
		out[a] = struct{}{}
	}
	return out
}

func (s AnnotationSet) subsetOf(other AnnotationSet) bool {
	for a := range s {
		if _, ok := other[a]; !ok {
			return false
		}
	}
	return true
}

func (s AnnotationSet) intersects(other AnnotationSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for a := range small {
		if _, ok := large[a]; ok {
			return true
		}
	}
	return false
}

// Relation classifies two annotation sets of the same word.
type Relation int

const (
	// RelationMissing means the word is absent from the other dictionary.
	RelationMissing Relation = iota
	// RelationEqual means both sets hold the same annotations.
	RelationEqual
	// RelationSubset means the other dictionary has more annotations.
	RelationSubset
	// RelationSuperset means the other dictionary has fewer annotations.
	RelationSuperset
	// RelationOverlap means the sets share some annotations but neither
	// contains the other.
	RelationOverlap
	// RelationDisjoint means the sets share no annotation.
	RelationDisjoint
)

var relationNames = []string{"missing", "equal", "subset", "superset", "overlap", "disjoint"}

func (r Relation) String() string {
	if r < 0 || int(r) >= len(relationNames) {
		return "unknown"
	}
	return relationNames[r]
}

// ParseRelation converts a relation name back to its value.
func ParseRelation(name string) (Relation, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range relationNames {
		if n == name {
			return Relation(i), true
		}
	}
	return RelationMissing, false
}

// Relations lists every relation in declaration order.
func Relations() []Relation {
	out := make([]Relation, len(relationNames))
	for i := range relationNames {
		out[i] = Relation(i)
	}
	return out
}

// Relate classifies a against b. A nil or empty b yields RelationMissing.
func Relate(a, b AnnotationSet) Relation {
	if len(b) == 0 {
		return RelationMissing
	}
	switch {
	case a.Equal(b):
		return RelationEqual
	case a.subsetOf(b):
		return RelationSubset
	case b.subsetOf(a):
		return RelationSuperset
	case a.intersects(b):
		return RelationOverlap
	default:
		return RelationDisjoint
	}
}

// Predicate selects annotation sets by tag content.
type Predicate struct {
	// Has lists substrings that must each appear in some annotation.
	Has []string
	// Lacks lists substrings that must not appear in any annotation.
	Lacks []string
	// Exactly, when set, is the exact annotation set required.
	Exactly []string
}

// IsZero reports whether the predicate matches everything.
func (p Predicate) IsZero() bool {
	return len(p.Has) == 0 && len(p.Lacks) == 0 && len(p.Exactly) == 0
}

// Match reports whether set satisfies the predicate.
func (p Predicate) Match(set AnnotationSet) bool {
	for _, h := range p.Has {
		if !set.ContainsTag(h) {
			return false
		}
	}
	for _, l := range p.Lacks {
		if set.ContainsTag(l) {
			return false
		}
	}
	if len(p.Exactly) > 0 && !set.Equal(NewAnnotationSet(p.Exactly...)) {
		return false
	}
	return true
}
