package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lexsync/internal/lines"
	"github.com/verte-zerg/lexsync/internal/rewrite"
)

var (
	removeWords    []string
	removeLines    []string
	removeSuffixes []string
	removeFold     bool
	removeOut      string

	annotateWords     []string
	annotateWordsFile string
	annotateTag       string
	annotateOut       string
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove FILE",
		Short: "Drop matching lines from a dictionary and print them",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveCmd,
	}
	cmd.Flags().StringSliceVar(&removeWords, "words", nil, "drop every entry of these words")
	cmd.Flags().StringSliceVar(&removeLines, "lines", nil, "drop lines equal to these entries")
	cmd.Flags().StringSliceVar(&removeSuffixes, "suffix", nil, "drop entries whose word ends with one of these suffixes")
	cmd.Flags().BoolVar(&removeFold, "fold", false, "match suffixes ignoring Turkish case")
	cmd.Flags().StringVarP(&removeOut, "output", "o", "", "write the result here instead of rewriting FILE")
	return cmd
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	var fns []rewrite.Func
	if len(removeWords) > 0 {
		fns = append(fns, rewrite.RemoveWords(removeWords))
	}
	if len(removeLines) > 0 {
		fns = append(fns, rewrite.RemoveLines(removeLines))
	}
	if len(removeSuffixes) > 0 {
		fns = append(fns, rewrite.RemoveSuffixes(removeSuffixes, removeFold))
	}
	if len(fns) == 0 {
		return fmt.Errorf("one of --words, --lines or --suffix is required")
	}

	res, err := rewrite.File(args[0], removeOut, rewrite.Chain(fns...))
	if err != nil {
		return err
	}
	logger.Info("removed lines",
		zap.String("path", args[0]),
		zap.Int("dropped", len(res.Dropped)),
		zap.Int("kept", res.Kept),
	)
	return printLines(cmd.OutOrStdout(), res.Dropped)
}

func newAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate FILE",
		Short: "Add a tag to the entries of the given words",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnnotateCmd,
	}
	cmd.Flags().StringSliceVar(&annotateWords, "words", nil, "words to tag")
	cmd.Flags().StringVar(&annotateWordsFile, "words-file", "", "file with one word per line to tag")
	cmd.Flags().StringVar(&annotateTag, "tag", "", "tag to add, e.g. A:EndsWithAyn")
	cmd.Flags().StringVarP(&annotateOut, "output", "o", "", "write the result here instead of rewriting FILE")
	return cmd
}

func runAnnotateCmd(cmd *cobra.Command, args []string) error {
	if annotateTag == "" {
		return fmt.Errorf("--tag is required")
	}
	words := append([]string(nil), annotateWords...)
	if annotateWordsFile != "" {
		fromFile, err := lines.LoadWords(annotateWordsFile)
		if err != nil {
			return fmt.Errorf("failed to load words: %w", err)
		}
		words = append(words, fromFile...)
	}
	if len(words) == 0 {
		return fmt.Errorf("--words or --words-file is required")
	}

	res, err := rewrite.File(args[0], annotateOut, rewrite.AddTag(words, annotateTag))
	if err != nil {
		return err
	}
	logger.Info("tagged entries",
		zap.String("path", args[0]),
		zap.String("tag", annotateTag),
		zap.Int("replaced", len(res.Replaced)),
	)
	out := cmd.OutOrStdout()
	for _, c := range res.Replaced {
		if _, err := fmt.Fprintf(out, "%d: %s -> %s\n", c.Line, c.Old, c.New); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
