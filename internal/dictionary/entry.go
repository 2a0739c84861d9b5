// Package dictionary parses morphological dictionary lines and indexes them
// by word.
//
// A dictionary line is either a bare word ("köpek") or a word followed by a
// single space and a bracketed annotation ("kedi [P:Noun]",
// "bayi [P:Adj; A:EndsWithAyn]").
package dictionary

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// NoAnnotation marks an entry without a bracketed annotation.
const NoAnnotation = "NOMETA"

// ErrMalformedEntry is matched by every MalformedEntryError.
var ErrMalformedEntry = errors.New("malformed dictionary entry")

// MalformedEntryError reports a line that does not round-trip through
// ParseLine and Entry.String.
type MalformedEntryError struct {
	Line string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed dictionary entry %q", e.Line)
}

// Is reports whether target is ErrMalformedEntry.
func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}

// Entry is one parsed dictionary line.
type Entry struct {
	Word       string
	Annotation string
}

// HasAnnotation reports whether the entry carries a bracketed annotation.
func (e Entry) HasAnnotation() bool {
	return e.Annotation != NoAnnotation
}

// String rebuilds the dictionary line.
func (e Entry) String() string {
	if !e.HasAnnotation() {
		return e.Word
	}
	return e.Word + " " + e.Annotation
}

// ParseLine splits a stripped dictionary line into its word and annotation.
// The line must be reproduced exactly by the resulting Entry.String.
func ParseLine(line string) (Entry, error) {
	var entry Entry
	if idx := strings.IndexByte(line, '['); idx >= 0 {
		entry.Word = strings.TrimRightFunc(line[:idx], unicode.IsSpace)
		entry.Annotation = strings.TrimSpace(line[idx:])
	} else {
		entry.Word = strings.TrimSpace(line)
		entry.Annotation = NoAnnotation
	}
	if entry.Word == "" || entry.String() != line {
		return Entry{}, &MalformedEntryError{Line: line}
	}
	return entry, nil
}

// Tags splits the annotation into its individual tags. An entry without
// annotation has no tags.
func (e Entry) Tags() []string {
	if !e.HasAnnotation() {
		return nil
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(e.Annotation, "["), "]")
	parts := strings.Split(inner, ";")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// WithTag returns the entry with tag appended to its annotation. An entry
// that already carries the tag is returned unchanged.
func (e Entry) WithTag(tag string) Entry {
	tags := e.Tags()
	for _, t := range tags {
		if t == tag {
			return e
		}
	}
	tags = append(tags, tag)
	return Entry{Word: e.Word, Annotation: "[" + strings.Join(tags, "; ") + "]"}
}
