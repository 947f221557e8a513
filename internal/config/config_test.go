package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	require.Equal(t, DefaultMinBlockSize, cfg.MinBlockSize)
	require.Equal(t, DefaultMinChars, cfg.MinChars)
	require.Equal(t, DefaultBlockPercentThreshold, cfg.BlockPercentThreshold)
	require.Equal(t, 0, cfg.FilesToCheck)
	require.Equal(t, FormatConsole, cfg.OutputFormat)
	require.False(t, cfg.GetIgnoreSameFilename())
	require.Equal(t, DefaultCacheDir, cfg.Cache.Dir)
	require.False(t, cfg.Cache.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `min_block_size: 10
min_chars: 5
block_percent_threshold: 50
output_format: json
ignore_same_filename: true
cache:
  enabled: true
  dir: ./.cache
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	require.Equal(t, 10, cfg.MinBlockSize)
	require.Equal(t, 5, cfg.MinChars)
	require.Equal(t, 50, cfg.BlockPercentThreshold)
	require.Equal(t, FormatJSON, cfg.OutputFormat)
	require.True(t, cfg.GetIgnoreSameFilename())
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, "./.cache", cfg.Cache.Dir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	require.Error(t, err)
}

func TestLoadNoPathReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(wd)
	require.NoError(t, os.Chdir(tmpDir))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, GetDefaultConfig(), cfg)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "duplo.yaml")

	cfg := GetDefaultConfig()
	cfg.MinBlockSize = 7
	cfg.Baseline.Path = "prior.json"

	require.NoError(t, Save(cfg, configPath))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, 7, loaded.MinBlockSize)
	require.Equal(t, "prior.json", loaded.Baseline.Path)
}

func TestMergeWithDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	mergeWithDefaults(cfg)

	require.Equal(t, DefaultMinBlockSize, cfg.MinBlockSize)
	require.Equal(t, DefaultMinChars, cfg.MinChars)
	require.Equal(t, DefaultBlockPercentThreshold, cfg.BlockPercentThreshold)
	require.Equal(t, FormatConsole, cfg.OutputFormat)
	require.NotNil(t, cfg.IgnoreSameFilename)
	require.False(t, *cfg.IgnoreSameFilename)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.MinBlockSize = 0
	require.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.BlockPercentThreshold = 101
	require.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.OutputFormat = "yaml"
	require.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.Baseline.Path = "b.json"
	cfg.Baseline.SavePath = "b.json"
	require.Error(t, cfg.Validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())
}

// Config hash behavior, grounded on config.rs's own unit tests:
// cleaning_config_hash only reacts to min_chars, detection_config_hash
// reacts to every detection-relevant field.

func TestCleaningConfigHashDeterministic(t *testing.T) {
	c1 := GetDefaultConfig()
	c2 := GetDefaultConfig()
	require.Equal(t, c1.CleaningConfigHash(), c2.CleaningConfigHash())
}

func TestCleaningConfigHashChangesWithMinChars(t *testing.T) {
	c1 := GetDefaultConfig()
	c1.MinChars = 3
	c2 := GetDefaultConfig()
	c2.MinChars = 5
	require.NotEqual(t, c1.CleaningConfigHash(), c2.CleaningConfigHash())
}

func TestCleaningConfigHashUnaffectedByMinBlockSize(t *testing.T) {
	c1 := GetDefaultConfig()
	c1.MinBlockSize = 4
	c2 := GetDefaultConfig()
	c2.MinBlockSize = 10
	require.Equal(t, c1.CleaningConfigHash(), c2.CleaningConfigHash())
}

func TestDetectionConfigHashChangesWithMinBlockSize(t *testing.T) {
	c1 := GetDefaultConfig()
	c1.MinBlockSize = 4
	c2 := GetDefaultConfig()
	c2.MinBlockSize = 10
	require.NotEqual(t, c1.DetectionConfigHash(), c2.DetectionConfigHash())
}

func TestDetectionConfigHashChangesWithThreshold(t *testing.T) {
	c1 := GetDefaultConfig()
	c1.BlockPercentThreshold = 100
	c2 := GetDefaultConfig()
	c2.BlockPercentThreshold = 50
	require.NotEqual(t, c1.DetectionConfigHash(), c2.DetectionConfigHash())
}

func TestDetectionConfigHashChangesWithIgnoreSameFilename(t *testing.T) {
	c1 := GetDefaultConfig()
	c1.IgnoreSameFilename = boolPtr(false)
	c2 := GetDefaultConfig()
	c2.IgnoreSameFilename = boolPtr(true)
	require.NotEqual(t, c1.DetectionConfigHash(), c2.DetectionConfigHash())
}
