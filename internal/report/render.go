package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/model"
)

const (
	colorReset  = "\x1b[0m"
	maxBarWidth = 30
	minBarWidth = 10
	// countsTextWidth is the room taken by the relation, count and share
	// columns of RenderCounts.
	countsTextWidth = 32
)

var relationColors = map[dictionary.Relation]string{
	dictionary.RelationMissing:  "\x1b[31m",
	dictionary.RelationEqual:    "\x1b[32m",
	dictionary.RelationSubset:   "\x1b[36m",
	dictionary.RelationSuperset: "\x1b[33m",
	dictionary.RelationOverlap:  "\x1b[35m",
	dictionary.RelationDisjoint: "\x1b[34m",
}

// Colorize wraps text in the ANSI color of the relation when enabled.
func Colorize(rel dictionary.Relation, text string, enabled bool) string {
	code, ok := relationColors[rel]
	if !enabled || !ok {
		return text
	}
	return code + text + colorReset
}

// BuildIndexStats summarizes an index built from lineCount raw lines.
func BuildIndexStats(path string, lineCount int, idx *dictionary.Index) model.IndexStats {
	return model.IndexStats{
		Path:       path,
		Lines:      lineCount,
		Entries:    idx.Entries(),
		Words:      idx.Len(),
		Polysemous: len(idx.Polysemous()),
	}
}

// RenderIndexStats prints the counts of one index.
func RenderIndexStats(w io.Writer, s model.IndexStats) error {
	rows := [][]string{
		{"Lines", fmt.Sprintf("%d", s.Lines)},
		{"Entries", fmt.Sprintf("%d", s.Entries)},
		{"Words", fmt.Sprintf("%d", s.Words)},
		{"Polysemous", fmt.Sprintf("%d", s.Polysemous)},
	}
	if _, err := fmt.Fprintln(w, s.Path); err != nil {
		return err
	}
	return writeLines(w, FormatTable(nil, rows, map[int]bool{1: true}))
}

// RenderCounts prints one row per relation with its share of the total and
// a proportional bar sized to totalWidth. A non-positive totalWidth uses the
// widest bar.
func RenderCounts(w io.Writer, counts model.Counts, totalWidth int) error {
	total := counts.Total()
	if total == 0 {
		_, err := fmt.Fprintln(w, "No words compared.")
		return err
	}
	rows := make([][]string, 0, len(counts))
	for _, rel := range dictionary.Relations() {
		n := counts[rel]
		if n == 0 {
			continue
		}
		share := float64(n) / float64(total)
		rows = append(rows, []string{
			rel.String(),
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.2f%%", share*100),
			bar(share, barWidthFor(totalWidth)),
		})
	}
	rows = append(rows, []string{"total", fmt.Sprintf("%d", total), "100.00%", ""})
	lines := FormatTable([]string{"Relation", "Words", "Share", ""}, rows, map[int]bool{1: true, 2: true})
	return writeLines(w, lines)
}

// RenderRuns prints saved runs, newest first as given.
func RenderRuns(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No saved runs.")
		return err
	}
	headers := []string{"ID", "Created", "Left", "Right", "Words", "Missing", "Equal", "Changed"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		changed := run.Counts.Total() - run.Counts[dictionary.RelationMissing] - run.Counts[dictionary.RelationEqual]
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			sideLabel(run.Left),
			sideLabel(run.Right),
			fmt.Sprintf("%d", run.Counts.Total()),
			fmt.Sprintf("%d", run.Counts[dictionary.RelationMissing]),
			fmt.Sprintf("%d", run.Counts[dictionary.RelationEqual]),
			fmt.Sprintf("%d", changed),
		})
	}
	return writeLines(w, FormatTable(headers, rows, map[int]bool{4: true, 5: true, 6: true, 7: true}))
}

func sideLabel(s model.Side) string {
	switch {
	case s.Name == "":
		return s.Path
	case s.Path == "":
		return s.Name
	default:
		return s.Name + " (" + s.Path + ")"
	}
}

func barWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return maxBarWidth
	}
	width := totalWidth - countsTextWidth
	if width > maxBarWidth {
		return maxBarWidth
	}
	if width < minBarWidth {
		return minBarWidth
	}
	return width
}

func bar(share float64, width int) string {
	n := int(share*float64(width) + 0.5)
	if n == 0 && share > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
