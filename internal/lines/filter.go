package lines

import "strings"

// FilterFunc returns true when a line should be kept.
type FilterFunc func(string) bool

// Apply returns the lines accepted by every filter, in input order.
func Apply(in []string, filters ...FilterFunc) []string {
	if len(filters) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
outer:
	for _, line := range in {
		for _, keep := range filters {
			if !keep(line) {
				continue outer
			}
		}
		out = append(out, line)
	}
	return out
}

// SkipContaining drops lines that contain substr anywhere.
func SkipContaining(substr string) FilterFunc {
	return func(line string) bool {
		return !strings.Contains(line, substr)
	}
}

// SkipAnyOf drops lines containing any of the substrings.
func SkipAnyOf(substrs []string) []FilterFunc {
	filters := make([]FilterFunc, 0, len(substrs))
	for _, s := range substrs {
		if s == "" {
			continue
		}
		filters = append(filters, SkipContaining(s))
	}
	return filters
}

// SkipComments drops lines containing '#'.
func SkipComments() FilterFunc {
	return SkipContaining("#")
}

// SkipVerbs drops lines that look like infinitives ("mek"/"mak") unless
// they are tagged as nouns.
func SkipVerbs() FilterFunc {
	return func(line string) bool {
		if !strings.Contains(line, "mek") && !strings.Contains(line, "mak") {
			return true
		}
		return strings.Contains(line, "Noun")
	}
}
