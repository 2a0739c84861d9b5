package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lexsync/internal/browse"
	"github.com/verte-zerg/lexsync/internal/compare"
	"github.com/verte-zerg/lexsync/internal/config"
	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/lines"
	"github.com/verte-zerg/lexsync/internal/model"
	"github.com/verte-zerg/lexsync/internal/report"
	"github.com/verte-zerg/lexsync/internal/store"
)

const (
	defaultHistoryLimit  = 20
	defaultTerminalWidth = 80
	latestRun            = "latest"
)

var (
	compareLeftHas      []string
	compareLeftLacks    []string
	compareLeftExactly  []string
	compareRightHas     []string
	compareRightLacks   []string
	compareRightExactly []string
	compareRelations    []string
	compareSkipEqual    bool
	compareMirror       bool
	compareSave         bool
	compareSummary      bool

	diffContext int

	expectWords     []string
	expectWordsFile string
	expectHas       []string
	expectCollapse  []string
	expectRight     string

	historyLimit int
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [LEFT RIGHT]",
		Short: "Relate every word of LEFT to its entries in RIGHT",
		Args:  pairArgs,
		RunE:  runCompareCmd,
	}
	addSideFlags(cmd)
	cmd.Flags().StringSliceVar(&compareLeftHas, "left-has", nil, "left annotations must contain these substrings")
	cmd.Flags().StringSliceVar(&compareLeftLacks, "left-lacks", nil, "left annotations must not contain these substrings")
	cmd.Flags().StringSliceVar(&compareLeftExactly, "left-exactly", nil, "exact left annotation set")
	cmd.Flags().StringSliceVar(&compareRightHas, "right-has", nil, "right annotations must contain these substrings")
	cmd.Flags().StringSliceVar(&compareRightLacks, "right-lacks", nil, "right annotations must not contain these substrings")
	cmd.Flags().StringSliceVar(&compareRightExactly, "right-exactly", nil, "exact right annotation set")
	cmd.Flags().StringSliceVar(&compareRelations, "relation", nil, "only report these relations ("+strings.Join(relationNames(), ", ")+")")
	cmd.Flags().BoolVar(&compareSkipEqual, "skip-equal", false, "do not report words with equal annotations")
	cmd.Flags().BoolVar(&compareMirror, "mirror", false, "also compare RIGHT against LEFT")
	cmd.Flags().BoolVar(&compareSave, "save", false, "store the comparison in the database")
	cmd.Flags().BoolVar(&compareSummary, "summary", false, "print relation counts after the status lines")
	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	opts, err := compareOptions()
	if err != nil {
		return err
	}
	left, right, err := loadPair(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := report.UseColor(out, rootColor)
	results := compare.Compare(left.index, right.index, opts)
	if err := writeStatusLines(out, results, sideLeftName, sideRightName, color); err != nil {
		return err
	}
	if compareMirror {
		mirrored := compare.Mirror(left.index, right.index, opts)
		if err := writeStatusLines(out, mirrored, sideRightName, sideLeftName, color); err != nil {
			return err
		}
	}
	if compareSummary {
		if err := report.RenderCounts(out, compare.Summarize(results), report.TerminalWidth(defaultTerminalWidth)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if compareSave {
		run := model.Run{
			Left:  model.Side{Name: sideLeftName, Path: left.path},
			Right: model.Side{Name: sideRightName, Path: right.path},
		}
		saved, err := saveRun(cmd.Context(), run, results)
		if err != nil {
			return err
		}
		logger.Info("saved run", zap.String("id", saved.ID), zap.Int("words", saved.Counts.Total()))
	}
	return nil
}

func compareOptions() (compare.Options, error) {
	relations, err := parseRelations(compareRelations)
	if err != nil {
		return compare.Options{}, err
	}
	return compare.Options{
		LeftMatch:  dictionary.Predicate{Has: compareLeftHas, Lacks: compareLeftLacks, Exactly: compareLeftExactly},
		RightMatch: dictionary.Predicate{Has: compareRightHas, Lacks: compareRightLacks, Exactly: compareRightExactly},
		Relations:  relations,
		SkipEqual:  compareSkipEqual,
	}, nil
}

func writeStatusLines(w io.Writer, results []model.WordResult, leftName, rightName string, color bool) error {
	for _, r := range results {
		line := report.Colorize(r.Relation, compare.StatusLine(r, leftName, rightName), color)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newOnlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "only [LEFT RIGHT]",
		Short: "Print words present only in LEFT",
		Args:  pairArgs,
		RunE:  runOnlyCmd,
	}
	addSideFlags(cmd)
	return cmd
}

func runOnlyCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	left, right, err := loadPair(args)
	if err != nil {
		return err
	}
	results := compare.OnlyIn(left.index, right.index)
	words := make([]string, 0, len(results))
	for _, r := range results {
		words = append(words, r.Word)
	}
	return printLines(cmd.OutOrStdout(), words)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [LEFT RIGHT]",
		Short: "Print a unified diff of the filtered dictionaries",
		Args:  pairArgs,
		RunE:  runDiffCmd,
	}
	addSideFlags(cmd)
	cmd.Flags().IntVar(&diffContext, "context", 0, "lines of context")
	return cmd
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	if diffContext < 0 {
		return fmt.Errorf("--context must be >= 0")
	}
	leftPath, rightPath, err := resolvePair(args)
	if err != nil {
		return err
	}
	leftLines, err := lines.Load(leftPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	rightLines, err := lines.Load(rightPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	diff, err := compare.UnifiedDiff(
		lines.Apply(leftLines, skippers(filterLeftSkip)...),
		lines.Apply(rightLines, skippers(filterRightSkip)...),
		leftPath, rightPath, diffContext,
	)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), diff); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExpectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expect FILE",
		Short: "Check that words carry the expected annotations",
		Args:  cobra.ExactArgs(1),
		RunE:  runExpectCmd,
	}
	addSideFlags(cmd)
	cmd.Flags().StringSliceVar(&expectWords, "words", nil, "words to check")
	cmd.Flags().StringVar(&expectWordsFile, "words-file", "", "file with one word per line to check")
	cmd.Flags().StringSliceVar(&expectHas, "has", []string{dictionary.NoAnnotation}, "substrings every word's annotations must contain")
	cmd.Flags().StringSliceVar(&expectCollapse, "collapse", nil, "annotations treated as "+dictionary.NoAnnotation)
	cmd.Flags().StringVar(&expectRight, "right", "", "second dictionary that must carry the same annotations")
	return cmd
}

func runExpectCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	applySliceConfig(cmd, "has", &expectHas, fileCfg.Expect.Has)
	applySliceConfig(cmd, "collapse", &expectCollapse, fileCfg.Expect.Collapse)

	words := append([]string(nil), expectWords...)
	if expectWordsFile != "" {
		fromFile, err := lines.LoadWords(expectWordsFile)
		if err != nil {
			return fmt.Errorf("failed to load words: %w", err)
		}
		words = append(words, fromFile...)
	}
	if len(words) == 0 {
		return fmt.Errorf("--words or --words-file is required")
	}

	left, err := loadDictionary(args[0], filterLeftSkip)
	if err != nil {
		return err
	}
	collapse := compare.CollapseTo(expectCollapse, dictionary.NoAnnotation)
	want := dictionary.Predicate{Has: expectHas}

	findings := compare.Expect(left.index, words, want, collapse)
	if expectRight != "" {
		right, err := loadDictionary(expectRight, filterRightSkip)
		if err != nil {
			return err
		}
		findings = append(findings, compare.ExpectSame(left.index, right.index, words, collapse)...)
	}

	out := cmd.OutOrStdout()
	for _, f := range findings {
		if _, err := fmt.Fprintln(out, f.Describe(want, sideLeftName, sideRightName)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if len(findings) > 0 {
		return fmt.Errorf("%d expectation(s) failed", len(findings))
	}
	logger.Info("all expectations met", zap.Int("words", len(words)))
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved comparisons",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "number of runs to list (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DBPath(rootDBPath))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	runs, err := st.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := report.RenderRuns(cmd.OutOrStdout(), runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [RUN]",
		Short: "Browse a saved run, or a fresh comparison of the configured dictionaries",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBrowseCmd,
	}
	addSideFlags(cmd)
	return cmd
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	var (
		title   string
		run     model.Run
		results []model.WordResult
	)
	if len(args) == 1 {
		var err error
		run, results, err = loadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		title = fmt.Sprintf("Run %s  %s", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"))
	} else {
		left, right, err := loadPair(nil)
		if err != nil {
			return err
		}
		results = compare.Compare(left.index, right.index, compare.Options{})
		run.Left = model.Side{Name: sideLeftName, Path: left.path}
		run.Right = model.Side{Name: sideRightName, Path: right.path}
		title = fmt.Sprintf("%s vs %s", left.path, right.path)
	}

	m := browse.NewModel(title, nameOr(run.Left, sideLeftName), nameOr(run.Right, sideRightName), results)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browse TUI: %w", err)
	}
	return nil
}

func loadRun(ctx context.Context, id string) (model.Run, []model.WordResult, error) {
	st, err := store.Open(config.DBPath(rootDBPath))
	if err != nil {
		return model.Run{}, nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if id == latestRun {
		runs, err := st.ListRuns(ctx, 1)
		if err != nil {
			return model.Run{}, nil, fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			return model.Run{}, nil, fmt.Errorf("no saved runs")
		}
		id = runs[0].ID
	}
	run, err := st.GetRun(ctx, id)
	if errors.Is(err, store.ErrRunNotFound) {
		logErrf("List saved runs with: lexsync history\n")
	}
	if err != nil {
		return model.Run{}, nil, err
	}
	results, err := st.ListResults(ctx, run.ID, nil)
	if err != nil {
		return model.Run{}, nil, fmt.Errorf("failed to load results: %w", err)
	}
	return run, results, nil
}

func saveRun(ctx context.Context, run model.Run, results []model.WordResult) (model.Run, error) {
	st, err := store.Open(config.DBPath(rootDBPath))
	if err != nil {
		return model.Run{}, fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	saved, err := st.SaveRun(ctx, run, results)
	if err != nil {
		return model.Run{}, fmt.Errorf("failed to save run: %w", err)
	}
	return saved, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func nameOr(side model.Side, fallback string) string {
	if side.Name != "" {
		return side.Name
	}
	return fallback
}

func pairArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("%s accepts either no arguments or LEFT and RIGHT", cmd.Name())
	}
	return nil
}

func parseRelations(names []string) ([]dictionary.Relation, error) {
	out := make([]dictionary.Relation, 0, len(names))
	for _, name := range names {
		rel, ok := dictionary.ParseRelation(name)
		if !ok {
			return nil, fmt.Errorf("unknown relation %q (want %s)", name, strings.Join(relationNames(), ", "))
		}
		out = append(out, rel)
	}
	return out, nil
}

func relationNames() []string {
	rels := dictionary.Relations()
	names := make([]string, len(rels))
	for i, r := range rels {
		names[i] = r.String()
	}
	return names
}
