// Package config provides configuration management for the duplicate
// detector: loading, parsing, and validating the YAML configuration
// file, merging it with documented defaults, and deriving the two
// config hashes the loader cache and baseline layers key off of.
package config

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Default threshold constants, matching the original tool's defaults.
const (
	DefaultMinBlockSize          = 4
	DefaultMinChars              = 3
	DefaultBlockPercentThreshold = 100
	DefaultCacheDir              = ".duplo-cache"
)

// OutputFormat selects which report sink renders the result.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatXML     OutputFormat = "xml"
)

// Config represents the application configuration. CLI flags in
// cmd/duplo override whatever a loaded YAML file sets.
type Config struct {
	MinBlockSize          int          `yaml:"min_block_size"`
	MinChars              int          `yaml:"min_chars"`
	BlockPercentThreshold int          `yaml:"block_percent_threshold"`
	FilesToCheck          int          `yaml:"files_to_check"` // 0 = all files
	Threads               int          `yaml:"threads"`
	OutputFormat          OutputFormat `yaml:"output_format"`

	// IgnoreSameFilename uses a pointer so we can tell "unset, use
	// default" apart from an explicit "false" in a loaded YAML file.
	IgnoreSameFilename *bool `yaml:"ignore_same_filename"`

	Cache    CacheConfig    `yaml:"cache"`
	Baseline BaselineConfig `yaml:"baseline"`
	Git      GitConfig      `yaml:"git"`
}

// CacheConfig contains incremental-cache settings.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// BaselineConfig contains baseline-comparison settings.
type BaselineConfig struct {
	Path     string `yaml:"path"`      // compare against, empty = disabled
	SavePath string `yaml:"save_path"` // persist current result, empty = disabled
}

// GitConfig contains git-mode discovery settings.
type GitConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ChangedOnly bool   `yaml:"changed_only"`
	BaseBranch  string `yaml:"base_branch"` // empty = auto-detect
}

// Load loads configuration from a file. If configPath is empty, it
// searches standard locations; if none is found, it returns the
// default configuration rather than failing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = findConfigFile()
		if err != nil {
			return GetDefaultConfig(), nil
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeWithDefaults(&cfg)
	return &cfg, nil
}

// Save saves configuration to a file.
func Save(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetDefaultConfig returns the default configuration, matching the
// original tool's documented defaults.
func GetDefaultConfig() *Config {
	return &Config{
		MinBlockSize:          DefaultMinBlockSize,
		MinChars:              DefaultMinChars,
		BlockPercentThreshold: DefaultBlockPercentThreshold,
		FilesToCheck:          0,
		Threads:               0, // 0 = use runtime.NumCPU()
		OutputFormat:          FormatConsole,
		IgnoreSameFilename:    boolPtr(false),
		Cache: CacheConfig{
			Enabled: false,
			Dir:     DefaultCacheDir,
		},
	}
}

// findConfigFile looks for config files in standard locations.
func findConfigFile() (string, error) {
	configNames := []string{
		"duplo.yaml",
		"duplo.yml",
		".duplo.yaml",
		".duplo.yml",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	return "", fmt.Errorf("no config file found")
}

// mergeWithDefaults fills in missing configuration values with defaults.
func mergeWithDefaults(cfg *Config) {
	defaults := GetDefaultConfig()

	if cfg.MinBlockSize == 0 {
		cfg.MinBlockSize = defaults.MinBlockSize
	}
	if cfg.MinChars == 0 {
		cfg.MinChars = defaults.MinChars
	}
	if cfg.BlockPercentThreshold == 0 {
		cfg.BlockPercentThreshold = defaults.BlockPercentThreshold
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = defaults.OutputFormat
	}
	if cfg.IgnoreSameFilename == nil {
		cfg.IgnoreSameFilename = defaults.IgnoreSameFilename
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaults.Cache.Dir
	}
}

// Validate checks if the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.MinBlockSize < 1 {
		return fmt.Errorf("min_block_size must be >= 1")
	}
	if c.MinChars < 1 {
		return fmt.Errorf("min_chars must be >= 1")
	}
	if c.BlockPercentThreshold < 0 || c.BlockPercentThreshold > 100 {
		return fmt.Errorf("block_percent_threshold must be between 0 and 100")
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0")
	}
	switch c.OutputFormat {
	case FormatConsole, FormatJSON, FormatXML:
	default:
		return fmt.Errorf("invalid output format: %s", c.OutputFormat)
	}
	if c.Baseline.Path != "" && c.Baseline.SavePath == c.Baseline.Path {
		return fmt.Errorf("baseline path and save-baseline path must differ")
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// GetIgnoreSameFilename safely returns IgnoreSameFilename with its
// default fallback.
func (c *Config) GetIgnoreSameFilename() bool {
	if c.IgnoreSameFilename == nil {
		return false
	}
	return *c.IgnoreSameFilename
}

// CleaningConfigHash hashes only the configuration fields that affect
// line cleaning - currently just MinChars - so that changing a
// detection-only field (min block size, threshold, same-name flag)
// never invalidates the on-disk cleaned-line cache. Mirrors
// config.rs::cleaning_config_hash exactly.
func (c *Config) CleaningConfigHash() uint64 {
	h := xxhash.New()
	writeInt(h, c.MinChars)
	return h.Sum64()
}

// DetectionConfigHash hashes every configuration field that affects
// detection output, used to warn when a baseline was produced under
// different settings. Mirrors config.rs::detection_config_hash.
func (c *Config) DetectionConfigHash() uint64 {
	h := xxhash.New()
	writeInt(h, c.MinChars)
	writeInt(h, c.MinBlockSize)
	writeInt(h, c.BlockPercentThreshold)
	if c.GetIgnoreSameFilename() {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return h.Sum64()
}

func writeInt(h *xxhash.Digest, v int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
	h.Write(buf[:])
}

// GetConfigPaths returns the standard configuration file names, in the
// order findConfigFile searches them.
func GetConfigPaths() []string {
	return []string{
		"duplo.yaml",
		"duplo.yml",
		".duplo.yaml",
		".duplo.yml",
	}
}
