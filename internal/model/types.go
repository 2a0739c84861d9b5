// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/verte-zerg/lexsync/internal/dictionary"
)

// Side names and locates one dictionary of a comparison.
type Side struct {
	Name string
	Path string
}

// WordResult is the comparison outcome for one word of the left dictionary.
type WordResult struct {
	Word     string
	Left     []string
	Right    []string
	Relation dictionary.Relation
}

// Counts tallies results per relation.
type Counts map[dictionary.Relation]int

// Total returns the number of counted results.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Run is a saved comparison.
type Run struct {
	ID        string
	CreatedAt time.Time
	Left      Side
	Right     Side
	Counts    Counts
}

// IndexStats summarizes one indexed dictionary.
type IndexStats struct {
	Path       string
	Lines      int
	Entries    int
	Words      int
	Polysemous int
}
