package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/lines"
	"github.com/verte-zerg/lexsync/internal/report"
	"github.com/verte-zerg/lexsync/internal/tdk"
)

var (
	indexListPolysemous bool

	queryHas     []string
	queryLacks   []string
	queryExactly []string

	grepSuffixes []string
	grepFold     bool

	tdkSuffixes []string
	tdkAyn      bool
	tdkFold     bool
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index FILE...",
		Short: "Index dictionaries and print their counts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIndexCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().BoolVar(&indexListPolysemous, "polysemous", false, "list words with more than one annotation")
	return cmd
}

func runIndexCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	out := cmd.OutOrStdout()
	for i, path := range args {
		d, err := loadDictionary(path, nil)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if err := report.RenderIndexStats(out, report.BuildIndexStats(path, d.raw, d.index)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if indexListPolysemous {
			if err := printLines(out, d.index.Polysemous()); err != nil {
				return err
			}
		}
	}
	return nil
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query FILE",
		Short: "Print words whose annotations match a predicate",
		Args:  cobra.ExactArgs(1),
		RunE:  runQueryCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringSliceVar(&queryHas, "has", nil, "every substring must appear in some annotation")
	cmd.Flags().StringSliceVar(&queryLacks, "lacks", nil, "no annotation may contain these substrings")
	cmd.Flags().StringSliceVar(&queryExactly, "exactly", nil, "the exact annotation set")
	return cmd
}

func runQueryCmd(cmd *cobra.Command, args []string) error {
	applySideConfig(cmd)
	d, err := loadDictionary(args[0], nil)
	if err != nil {
		return err
	}
	pred := dictionary.Predicate{Has: queryHas, Lacks: queryLacks, Exactly: queryExactly}
	words := d.index.Select(pred)
	logger.Debug("query matched", zap.Int("words", len(words)))
	return printLines(cmd.OutOrStdout(), words)
}

func newDupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dups FILE",
		Short: "Print repeated lines",
		Args:  cobra.ExactArgs(1),
		RunE:  runDupsCmd,
	}
}

func runDupsCmd(cmd *cobra.Command, args []string) error {
	all, err := lines.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	return printLines(cmd.OutOrStdout(), lines.Duplicates(all))
}

func newGrepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grep FILE",
		Short: "Print entries whose word ends with a suffix",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrepCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringSliceVar(&grepSuffixes, "suffix", nil, "word suffixes to match")
	cmd.Flags().BoolVar(&grepFold, "fold", false, "match suffixes ignoring Turkish case")
	return cmd
}

func runGrepCmd(cmd *cobra.Command, args []string) error {
	if len(grepSuffixes) == 0 {
		return fmt.Errorf("--suffix is required")
	}
	applySideConfig(cmd)
	all, err := lines.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	var matched []string
	for _, line := range lines.Apply(all, skippers(nil)...) {
		if dictionary.HasSuffix(dictionary.WordOf(line), grepSuffixes, grepFold) {
			matched = append(matched, line)
		}
	}
	return printLines(cmd.OutOrStdout(), matched)
}

func newTDKCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tdk FILE",
		Short: "List unit names from a TDK XML dump",
		Args:  cobra.ExactArgs(1),
		RunE:  runTDKCmd,
	}
	cmd.Flags().StringSliceVar(&tdkSuffixes, "suffix", nil, "only names ending with one of these suffixes")
	cmd.Flags().BoolVar(&tdkAyn, "ayn", false, "only Arabic loanwords ending in ayn after a vowel")
	cmd.Flags().BoolVar(&tdkFold, "fold", false, "match suffixes ignoring Turkish case")
	return cmd
}

func runTDKCmd(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open dump: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	units, err := tdk.ScanUnits(f)
	if err != nil {
		return fmt.Errorf("failed to scan dump: %w", err)
	}
	var names []string
	for _, u := range units {
		if len(tdkSuffixes) > 0 && !dictionary.HasSuffix(u.Name, tdkSuffixes, tdkFold) {
			continue
		}
		if tdkAyn && !u.ArabicAyn() {
			continue
		}
		names = append(names, u.Name)
	}
	logger.Debug("scanned dump", zap.Int("units", len(units)), zap.Int("matched", len(names)))
	return printLines(cmd.OutOrStdout(), names)
}

func printLines(w io.Writer, out []string) error {
	for _, line := range out {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
