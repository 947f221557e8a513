package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/toniantunovi/lucidshark-duplo/internal/config"
)

func TestRootCommandStructure(t *testing.T) {
	require.Equal(t, "duplo", rootCmd.Use)
	require.NotNil(t, scanCmd)
	require.Equal(t, "scan [paths...]", scanCmd.Use)
}

func TestSubcommandsRegistered(t *testing.T) {
	var foundScan, foundCache, foundVersion, foundConfigInit bool
	for _, cmd := range rootCmd.Commands() {
		switch cmd.Use {
		case "scan [paths...]":
			foundScan = true
		case "cache":
			foundCache = true
		case "version":
			foundVersion = true
		case "config-init [path]":
			foundConfigInit = true
		}
	}
	require.True(t, foundScan)
	require.True(t, foundCache)
	require.True(t, foundVersion)
	require.True(t, foundConfigInit)
}

func TestCacheClearRegisteredUnderCache(t *testing.T) {
	var found bool
	for _, cmd := range cacheCmd.Commands() {
		if cmd.Use == "clear" {
			found = true
		}
	}
	require.True(t, found)
}

func TestFlagShorthands(t *testing.T) {
	flags := scanCmd.Flags()
	require.Equal(t, "m", flags.Lookup("min-lines").Shorthand)
	require.Equal(t, "p", flags.Lookup("percent").Shorthand)
	require.Equal(t, "c", flags.Lookup("min-chars").Shorthand)
	require.Equal(t, "n", flags.Lookup("num-files").Shorthand)
	require.Equal(t, "j", flags.Lookup("threads").Shorthand)
	require.Equal(t, "d", flags.Lookup("ignore-same-name").Shorthand)
	require.Equal(t, "e", flags.Lookup("exclude").Shorthand)
}

// freshScanCmd builds a scan command with its own FlagSet bound to the
// same package-level flag variables, so each test parses flags without
// inheriting "Changed" state left behind by an earlier test sharing the
// real scanCmd's FlagSet.
func freshScanCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scan [paths...]"}
	cmd.Flags().IntVarP(&minLines, "min-lines", "m", config.DefaultMinBlockSize, "")
	cmd.Flags().IntVarP(&percent, "percent", "p", config.DefaultBlockPercentThreshold, "")
	cmd.Flags().IntVarP(&minChars, "min-chars", "c", config.DefaultMinChars, "")
	cmd.Flags().IntVarP(&numFiles, "num-files", "n", 0, "")
	cmd.Flags().IntVarP(&threads, "threads", "j", 0, "")
	cmd.Flags().BoolVarP(&ignoreSameName, "ignore-same-name", "d", false, "")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "")
	cmd.Flags().BoolVar(&xmlOutput, "xml", false, "")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "")
	cmd.Flags().StringSliceVarP(&excludePatterns, "exclude", "e", nil, "")
	cmd.Flags().BoolVar(&cacheEnabled, "cache", false, "")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", config.DefaultCacheDir, "")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "")
	cmd.Flags().StringVar(&saveBaselinePath, "save-baseline", "", "")
	cmd.Flags().BoolVar(&gitMode, "git", false, "")
	cmd.Flags().BoolVar(&changedOnly, "changed-only", false, "")
	cmd.Flags().StringVar(&baseBranch, "base-branch", "", "")
	return cmd
}

func TestBuildConfigDefaults(t *testing.T) {
	cfgFile = ""
	jsonOutput, xmlOutput = false, false
	cmd := freshScanCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := buildConfig(cmd)
	require.NoError(t, err)
	require.Equal(t, config.DefaultMinBlockSize, cfg.MinBlockSize)
	require.Equal(t, config.DefaultMinChars, cfg.MinChars)
}

func TestBuildConfigRejectsConflictingFormats(t *testing.T) {
	cfgFile = ""
	cmd := freshScanCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--json", "--xml"}))

	_, err := buildConfig(cmd)
	require.Error(t, err)
	require.Contains(t, err.Error(), "output format conflict")
}

func TestBuildConfigAppliesFlagOverrides(t *testing.T) {
	cfgFile = ""
	cmd := freshScanCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--min-lines", "10", "--percent", "50", "--json"}))

	cfg, err := buildConfig(cmd)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.MinBlockSize)
	require.Equal(t, 50, cfg.BlockPercentThreshold)
	require.Equal(t, config.FormatJSON, cfg.OutputFormat)
}

func TestDiscoverFilesFileList(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "files.txt")
	srcPath := filepath.Join(dir, "a.c")
	require.NoError(t, os.WriteFile(srcPath, []byte("int x;\n"), 0o644))
	require.NoError(t, os.WriteFile(listPath, []byte(srcPath+"\n"), 0o644))

	cfg := config.GetDefaultConfig()
	files, changed, err := discoverFiles(cfg, []string{listPath}, nil)
	require.NoError(t, err)
	require.Nil(t, changed)
	require.Equal(t, []string{srcPath}, files)
}

func TestDiscoverFilesDirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.c"), []byte("int x;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("hi"), 0o644))

	cfg := config.GetDefaultConfig()
	files, changed, err := discoverFiles(cfg, []string{dir}, nil)
	require.NoError(t, err)
	require.Nil(t, changed)
	require.Len(t, files, 1)
}
