// Package main provides the duplo command-line interface for
// cross-file duplicate code detection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toniantunovi/lucidshark-duplo/internal/baseline"
	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
	"github.com/toniantunovi/lucidshark-duplo/internal/config"
	"github.com/toniantunovi/lucidshark-duplo/internal/detect"
	"github.com/toniantunovi/lucidshark-duplo/internal/discovery"
	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/report"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
	"github.com/toniantunovi/lucidshark-duplo/internal/version"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Detection flags, names carried verbatim from the original tool's
	// cli.rs so the external interface matches its documented surface.
	minLines        int
	percent         int
	minChars        int
	numFiles        int
	threads         int
	ignoreSameName  bool
	jsonOutput      bool
	xmlOutput       bool
	outputPath      string
	excludePatterns []string

	// Cache flags
	cacheEnabled bool
	cacheDir     string
	clearCache   bool

	// Baseline flags
	baselinePath     string
	saveBaselinePath string

	// Git discovery flags
	gitMode     bool
	changedOnly bool
	baseBranch  string
)

var rootCmd = &cobra.Command{
	Use:     "duplo",
	Short:   "duplo - cross-file duplicate code detector",
	Version: version.Version,
	Long: `duplo finds maximal runs of duplicated source lines across a corpus of
files in many languages, after stripping comments, directives, and
whitespace. Results drive refactoring, code review gates, and CI
regression checks.`,
}

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Detect duplicate code across a set of files",
	Long: `Scan discovers source files one of three ways:

  duplo scan files.txt        # newline-separated file list ("-" = stdin)
  duplo scan ./src ./internal # directory roots, walked recursively
  duplo scan --git            # every file git tracks, in the repo root

and reports every duplicated run of min-lines or more cleaned source
lines shared between two file positions.`,
	RunE: runScan,
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the incremental cleaned-line cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := source.Clear(cacheDir); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Printf("Cleared cache directory: %s\n", cacheDir)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "config-init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "duplo.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s", path)
		}
		if err := config.Save(config.GetDefaultConfig(), path); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

// buildConfig loads the YAML config (if any) and layers explicit CLI
// flags on top of it, following a "config file, then flags override"
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("min-lines") {
		cfg.MinBlockSize = minLines
	}
	if flags.Changed("percent") {
		cfg.BlockPercentThreshold = percent
	}
	if flags.Changed("min-chars") {
		cfg.MinChars = minChars
	}
	if flags.Changed("num-files") {
		cfg.FilesToCheck = numFiles
	}
	if flags.Changed("threads") {
		cfg.Threads = threads
	}
	if flags.Changed("ignore-same-name") {
		v := ignoreSameName
		cfg.IgnoreSameFilename = &v
	}
	if flags.Changed("cache") {
		cfg.Cache.Enabled = cacheEnabled
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if flags.Changed("baseline") {
		cfg.Baseline.Path = baselinePath
	}
	if flags.Changed("save-baseline") {
		cfg.Baseline.SavePath = saveBaselinePath
	}
	if flags.Changed("git") {
		cfg.Git.Enabled = gitMode
	}
	if flags.Changed("changed-only") {
		cfg.Git.ChangedOnly = changedOnly
	}
	if flags.Changed("base-branch") {
		cfg.Git.BaseBranch = baseBranch
	}

	if jsonOutput && xmlOutput {
		return nil, fmt.Errorf("output format conflict: specify only one of --json or --xml")
	}
	if jsonOutput {
		cfg.OutputFormat = config.FormatJSON
	} else if xmlOutput {
		cfg.OutputFormat = config.FormatXML
	}

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = config.DefaultCacheDir
	}

	return cfg, cfg.Validate()
}

func progressFn() func(string) {
	return func(msg string) {
		if verbose {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	progress := progressFn()
	cfg, err := buildConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if clearCache {
		progress("Clearing cache...")
		if err := source.Clear(cfg.Cache.Dir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to clear cache: %v\n", err)
		}
	}

	fileList, changedFiles, err := discoverFiles(cfg, args, progress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var fileCache *source.Cache
	if cfg.Cache.Enabled {
		fileCache, err = source.NewCache(cfg.Cache.Dir, cfg.CleaningConfigHash())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize cache: %v\n", err)
			fileCache = nil
		} else {
			progress("Caching enabled")
		}
	}

	result, files, err := detect.Run(fileList, detect.Options{
		CleanConfig:        clean.Config{MinChars: cfg.MinChars},
		Params:             match.Params{MinBlockSize: cfg.MinBlockSize, BlockPercentThreshold: cfg.BlockPercentThreshold},
		NumThreads:         cfg.Threads,
		FilesToCheck:       cfg.FilesToCheck,
		IgnoreSameBasename: cfg.GetIgnoreSameFilename(),
		Cache:              fileCache,
		Progress:           progress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if changedFiles != nil {
		result = detect.FilterChangedOnly(result, files, changedFiles)
	}

	if cfg.Baseline.Path != "" {
		bl, err := baseline.Load(cfg.Baseline.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading baseline: %v\n", err)
			os.Exit(2)
		}
		if bl.ConfigHash != cfg.DetectionConfigHash() {
			fmt.Fprintln(os.Stderr, "Warning: baseline was created with different detection settings. Results may not be comparable.")
		}
		progress(fmt.Sprintf("Loaded baseline with %d known duplicates", len(bl.Entries)))
		result = bl.FilterNew(result, files)
		progress(fmt.Sprintf("Found %d NEW duplicate blocks (filtered from baseline)", result.DuplicateBlocks))
	}

	format := report.Console
	switch cfg.OutputFormat {
	case config.FormatJSON:
		format = report.JSON
	case config.FormatXML:
		format = report.XML
	}

	out := "-"
	if outputPath != "" {
		out = outputPath
	}
	writer, err := report.OutputWriter(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(2)
	}
	exporter := report.New(format)
	params := report.Params{MinBlockSize: cfg.MinBlockSize, MinChars: cfg.MinChars, BlockPercentThreshold: cfg.BlockPercentThreshold}
	if err := exporter.Export(result, files, params, writer); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(2)
	}
	// Closed explicitly: os.Exit below skips deferred calls, and the
	// stdout writer only flushes on Close.
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(2)
	}

	if cfg.Baseline.SavePath != "" {
		newBaseline := baseline.FromResult(result, files, cfg.DetectionConfigHash())
		if err := baseline.Save(newBaseline, cfg.Baseline.SavePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving baseline: %v\n", err)
			os.Exit(2)
		}
		progress(fmt.Sprintf("Saved baseline with %d duplicates to %q", len(newBaseline.Entries), cfg.Baseline.SavePath))
	}

	if result.DuplicateBlocks > 0 {
		os.Exit(1)
	}
	return nil
}

// discoverFiles resolves the scan's input file set using whichever of
// the three discovery collaborators applies: git-mode, a file-list
// path/stdin, or a recursive directory walk over the given roots.
func discoverFiles(cfg *config.Config, args []string, progress func(string)) ([]string, map[string]struct{}, error) {
	if cfg.Git.Enabled {
		res, err := discovery.Discover(discovery.DiscoverOptions{
			ChangedOnly: cfg.Git.ChangedOnly,
			BaseBranch:  cfg.Git.BaseBranch,
		}, progress)
		if err != nil {
			return nil, nil, err
		}
		return res.Files, res.ChangedFiles, nil
	}

	if len(args) == 1 {
		if args[0] == "-" {
			files, err := source.LoadFileList(args[0])
			return files, nil, err
		}
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			files, err := source.LoadFileList(args[0])
			return files, nil, err
		}
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	walker := &discovery.Walker{Roots: roots, Excludes: excludePatterns, Progress: progress}
	files, err := walker.Walk()
	return files, nil, err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: duplo.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress messages to stderr")

	scanCmd.Flags().IntVarP(&minLines, "min-lines", "m", config.DefaultMinBlockSize, "minimum block size in lines")
	scanCmd.Flags().IntVarP(&percent, "percent", "p", config.DefaultBlockPercentThreshold, "block percentage threshold (0-100)")
	scanCmd.Flags().IntVarP(&minChars, "min-chars", "c", config.DefaultMinChars, "minimum characters per line")
	scanCmd.Flags().IntVarP(&numFiles, "num-files", "n", 0, "compare only the first N files against the rest (0 = all)")
	scanCmd.Flags().IntVarP(&threads, "threads", "j", 0, "number of threads for parallel processing (0 = all cores)")
	scanCmd.Flags().BoolVarP(&ignoreSameName, "ignore-same-name", "d", false, "ignore file pairs with the same filename")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	scanCmd.Flags().BoolVar(&xmlOutput, "xml", false, "output in XML format")
	scanCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output file (- = stdout)")
	scanCmd.Flags().StringSliceVarP(&excludePatterns, "exclude", "e", nil, "glob exclude patterns for directory discovery (comma-separated)")

	scanCmd.Flags().BoolVar(&cacheEnabled, "cache", false, "enable the incremental cleaned-line cache")
	scanCmd.Flags().StringVar(&cacheDir, "cache-dir", config.DefaultCacheDir, "cache directory")
	scanCmd.Flags().BoolVar(&clearCache, "clear-cache", false, "clear the cache before scanning")

	scanCmd.Flags().StringVar(&baselinePath, "baseline", "", "baseline file to diff against; only new duplicates are reported")
	scanCmd.Flags().StringVar(&saveBaselinePath, "save-baseline", "", "save the current result as a baseline file")

	scanCmd.Flags().BoolVar(&gitMode, "git", false, "discover files via git ls-files instead of a file list or directory walk")
	scanCmd.Flags().BoolVar(&changedOnly, "changed-only", false, "with --git, restrict results to files changed vs. the base branch")
	scanCmd.Flags().StringVar(&baseBranch, "base-branch", "", "base branch for --changed-only (auto-detected if empty)")

	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", config.DefaultCacheDir, "cache directory")
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configInitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
