// Package main provides the CLI entrypoint for lexsync.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/lexsync/internal/config"
	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/lines"
	"github.com/verte-zerg/lexsync/internal/logging"
)

const (
	defaultLeftName  = "T"
	defaultRightName = "Z"
	defaultBlank     = "skip"
	defaultComments  = "keep"
)

var (
	rootConfigPath string
	rootLogLevel   string
	rootDBPath     string
	rootColor      bool

	sideLeftName       string
	sideRightName      string
	filterSkip         []string
	filterLeftSkip     []string
	filterRightSkip    []string
	filterSkipComments bool
	filterSkipVerbs    bool
	indexBlankLines    string
	indexComments      string

	fileCfg config.FileConfig
	logger  = logging.Nop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "lexsync",
		Short:             "Compare and maintain morphological dictionaries",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupRoot,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if err := logger.Sync(); err != nil {
				// Best-effort flush; stderr may not support sync.
				_ = err
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/lexsync/config.toml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", "", "database path (default: $XDG_DATA_HOME/lexsync/lexsync.db)")
	rootCmd.PersistentFlags().BoolVar(&rootColor, "color", false, "force colored output")

	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newOnlyCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newDupsCmd())
	rootCmd.AddCommand(newGrepCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newAnnotateCmd())
	rootCmd.AddCommand(newExpectCmd())
	rootCmd.AddCommand(newTDKCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	path := config.ConfigPath(rootConfigPath)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg

	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)
	l, err := logging.New(rootLogLevel, os.Stderr)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("config loaded", zap.String("path", path))
	return nil
}

// addSideFlags registers the naming, filtering and index policy flags
// shared by every command that loads dictionaries.
func addSideFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sideLeftName, "left-name", defaultLeftName, "label of the left dictionary")
	cmd.Flags().StringVar(&sideRightName, "right-name", defaultRightName, "label of the right dictionary")
	addFilterFlags(cmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&filterSkip, "skip", nil, "skip lines containing any of these substrings")
	cmd.Flags().StringSliceVar(&filterLeftSkip, "left-skip", nil, "extra skip substrings for the left dictionary")
	cmd.Flags().StringSliceVar(&filterRightSkip, "right-skip", nil, "extra skip substrings for the right dictionary")
	cmd.Flags().BoolVar(&filterSkipComments, "skip-comments", false, "skip lines containing '#'")
	cmd.Flags().BoolVar(&filterSkipVerbs, "skip-verbs", false, "skip infinitive lines not tagged as nouns")
	cmd.Flags().StringVar(&indexBlankLines, "blank-lines", defaultBlank, "blank line policy (skip, reject)")
	cmd.Flags().StringVar(&indexComments, "comments", defaultComments, "comment line policy (keep, skip, reject)")
}

// applySideConfig merges config file values into the shared side flags.
func applySideConfig(cmd *cobra.Command) {
	if cmd.Flags().Lookup("left-name") != nil {
		applyStringConfig(cmd, "left-name", &sideLeftName, fileCfg.Dictionaries.LeftName)
		applyStringConfig(cmd, "right-name", &sideRightName, fileCfg.Dictionaries.RightName)
	}
	applySliceConfig(cmd, "skip", &filterSkip, fileCfg.Filters.Skip)
	applySliceConfig(cmd, "left-skip", &filterLeftSkip, fileCfg.Filters.LeftSkip)
	applySliceConfig(cmd, "right-skip", &filterRightSkip, fileCfg.Filters.RightSkip)
	applyBoolConfig(cmd, "skip-comments", &filterSkipComments, fileCfg.Filters.SkipComments)
	applyBoolConfig(cmd, "skip-verbs", &filterSkipVerbs, fileCfg.Filters.SkipVerbs)
	applyStringConfig(cmd, "blank-lines", &indexBlankLines, fileCfg.Index.BlankLines)
	applyStringConfig(cmd, "comments", &indexComments, fileCfg.Index.Comments)
}

// resolvePair returns the left and right dictionary paths from args or
// the config file.
func resolvePair(args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	var left, right string
	if fileCfg.Dictionaries.Left != nil {
		left = *fileCfg.Dictionaries.Left
	}
	if fileCfg.Dictionaries.Right != nil {
		right = *fileCfg.Dictionaries.Right
	}
	if left == "" || right == "" {
		return "", "", fmt.Errorf("left and right dictionaries are required (arguments or [dictionaries] in config)")
	}
	return left, right, nil
}

func buildOptions() (dictionary.BuildOptions, error) {
	blank, err := dictionary.ParseLinePolicy(indexBlankLines)
	if err != nil {
		return dictionary.BuildOptions{}, fmt.Errorf("invalid --blank-lines value: %w", err)
	}
	comments, err := dictionary.ParseLinePolicy(indexComments)
	if err != nil {
		return dictionary.BuildOptions{}, fmt.Errorf("invalid --comments value: %w", err)
	}
	return dictionary.BuildOptions{Blank: blank, Comments: comments}, nil
}

// skippers returns the line filters for one side; extra holds the
// side-specific substrings.
func skippers(extra []string) []lines.FilterFunc {
	filters := lines.SkipAnyOf(filterSkip)
	filters = append(filters, lines.SkipAnyOf(extra)...)
	if filterSkipComments {
		filters = append(filters, lines.SkipComments())
	}
	if filterSkipVerbs {
		filters = append(filters, lines.SkipVerbs())
	}
	return filters
}

// loadedDict is one dictionary read, filtered and indexed.
type loadedDict struct {
	path  string
	raw   int
	lines []string
	index *dictionary.Index
}

func loadDictionary(path string, extraSkip []string) (loadedDict, error) {
	opts, err := buildOptions()
	if err != nil {
		return loadedDict{}, err
	}
	start := time.Now()
	all, err := lines.Load(path)
	if err != nil {
		return loadedDict{}, fmt.Errorf("failed to load dictionary: %w", err)
	}
	kept := lines.Apply(all, skippers(extraSkip)...)
	idx, err := dictionary.Build(kept, opts)
	if err != nil {
		return loadedDict{}, fmt.Errorf("failed to index %s: %w", path, err)
	}
	logger.Debug("indexed dictionary",
		zap.String("path", path),
		zap.Int("lines", len(all)),
		zap.Int("skipped", len(all)-len(kept)),
		zap.Int("words", idx.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return loadedDict{path: path, raw: len(all), lines: kept, index: idx}, nil
}

func loadPair(args []string) (loadedDict, loadedDict, error) {
	leftPath, rightPath, err := resolvePair(args)
	if err != nil {
		return loadedDict{}, loadedDict{}, err
	}
	left, err := loadDictionary(leftPath, filterLeftSkip)
	if err != nil {
		return loadedDict{}, loadedDict{}, err
	}
	right, err := loadDictionary(rightPath, filterRightSkip)
	if err != nil {
		return loadedDict{}, loadedDict{}, err
	}
	return left, right, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.ConfigPath(rootConfigPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logger.Info("created config", zap.String("path", path))
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lexsync configuration
# Uncomment a value to enable it. CLI flags override config values.

[dictionaries]
# left = "/path/to/master-dictionary.dict"
# left-name = %q
# right = "/path/to/other-dictionary.dict"
# right-name = %q

[index]
# blank-lines = %q        # skip | reject
# comments = %q           # keep | skip | reject

[filters]
# skip = ["S:", "Ref", "Index", "RootSuffix", "Compound", "Dup", "Num"]
# left-skip = []
# right-skip = []
# skip-comments = false
# skip-verbs = false

[expect]
# has = [%q]
# collapse = ["[A:InverseHarmony]", "[A:Voicing]", "[A:NoVoicing]"]

[log]
# level = %q
`,
		defaultLeftName,
		defaultRightName,
		defaultBlank,
		defaultComments,
		dictionary.NoAnnotation,
		logging.DefaultLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
