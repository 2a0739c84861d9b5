package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBlankLine is returned by Build when blank lines are rejected.
var ErrBlankLine = errors.New("blank line")

// ErrCommentLine is returned by Build when comment lines are rejected.
var ErrCommentLine = errors.New("comment line")

// LinePolicy decides what Build does with blank or comment lines.
type LinePolicy int

const (
	// LineDefault uses the per-kind default: skip blanks, keep comments.
	LineDefault LinePolicy = iota
	// LineKeep parses the line as a regular entry.
	LineKeep
	// LineSkip ignores the line.
	LineSkip
	// LineReject fails the build.
	LineReject
)

// ParseLinePolicy converts "keep", "skip" or "reject" to a LinePolicy.
func ParseLinePolicy(name string) (LinePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return LineDefault, nil
	case "keep":
		return LineKeep, nil
	case "skip":
		return LineSkip, nil
	case "reject":
		return LineReject, nil
	default:
		return LineDefault, fmt.Errorf("unknown line policy %q (want keep, skip or reject)", name)
	}
}

// BuildOptions configures Build.
type BuildOptions struct {
	Blank    LinePolicy
	Comments LinePolicy
}

// LineError attaches a 1-based line number to a build failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Index maps each word to the set of annotations listed for it.
type Index struct {
	words   map[string]AnnotationSet
	entries int
}

// Build indexes the given raw dictionary lines.
func Build(lines []string, opts BuildOptions) (*Index, error) {
	blank := opts.Blank
	if blank == LineDefault {
		blank = LineSkip
	}
	comments := opts.Comments
	if comments == LineDefault {
		comments = LineKeep
	}

	idx := &Index{words: make(map[string]AnnotationSet)}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			switch blank {
			case LineSkip:
				continue
			case LineReject:
				return nil, &LineError{Line: i + 1, Err: ErrBlankLine}
			}
		}
		if strings.HasPrefix(line, "#") {
			switch comments {
			case LineSkip:
				continue
			case LineReject:
				return nil, &LineError{Line: i + 1, Err: ErrCommentLine}
			}
		}
		entry, err := ParseLine(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		idx.add(entry)
	}
	return idx, nil
}

// FromEntries indexes already parsed entries.
func FromEntries(entries []Entry) *Index {
	idx := &Index{words: make(map[string]AnnotationSet, len(entries))}
	for _, e := range entries {
		idx.add(e)
	}
	return idx
}

func (idx *Index) add(e Entry) {
	set, ok := idx.words[e.Word]
	if !ok {
		set = AnnotationSet{}
		idx.words[e.Word] = set
	}
	set.Add(e.Annotation)
	idx.entries++
}

// Lookup returns the annotations of word. The set must not be modified.
func (idx *Index) Lookup(word string) (AnnotationSet, bool) {
	set, ok := idx.words[word]
	return set, ok
}

// Contains reports whether word is indexed.
func (idx *Index) Contains(word string) bool {
	_, ok := idx.words[word]
	return ok
}

// Len returns the number of distinct words.
func (idx *Index) Len() int {
	return len(idx.words)
}

// Entries returns the number of parsed lines that went into the index.
func (idx *Index) Entries() int {
	return idx.entries
}

// Words returns all indexed words in lexical order.
func (idx *Index) Words() []string {
	out := make([]string, 0, len(idx.words))
	for w := range idx.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Range calls fn for every word in lexical order until fn returns false.
func (idx *Index) Range(fn func(word string, set AnnotationSet) bool) {
	for _, w := range idx.Words() {
		if !fn(w, idx.words[w]) {
			return
		}
	}
}

// Select returns the words whose annotations satisfy p, in lexical order.
func (idx *Index) Select(p Predicate) []string {
	var out []string
	idx.Range(func(word string, set AnnotationSet) bool {
		if p.Match(set) {
			out = append(out, word)
		}
		return true
	})
	return out
}

// Polysemous returns the words listed with more than one annotation.
func (idx *Index) Polysemous() []string {
	var out []string
	idx.Range(func(word string, set AnnotationSet) bool {
		if set.Len() > 1 {
			out = append(out, word)
		}
		return true
	})
	return out
}
