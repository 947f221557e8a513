package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
)

// cacheVersion is the on-disk cache entry format version. Bumping it
// invalidates every existing cache entry.
const cacheVersion = 1

type cachedLine struct {
	Line       string `json:"line"`
	LineNumber int    `json:"line_number"`
	Hash       uint32 `json:"hash"`
}

type cacheEntry struct {
	Version     int          `json:"version"`
	ContentHash uint64       `json:"content_hash"`
	ConfigHash  uint64       `json:"config_hash"`
	Lines       []cachedLine `json:"lines"`
}

// Cache is an on-disk, per-file line-cleaning cache. A cache entry is
// valid only when its format version, cleaning-config hash, and the
// current content hash of the source file all match; any mismatch, or
// any read/parse error, is treated as a silent miss rather than a fatal
// error.
type Cache struct {
	dir        string
	configHash uint64
}

// NewCache creates (or reuses) dir as the cache directory, keyed by
// configHash - the cleaning-relevant configuration hash, not the full
// detection configuration hash.
func NewCache(dir string, configHash uint64) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %q: %w", dir, err)
	}
	return &Cache{dir: dir, configHash: configHash}, nil
}

// cachePath derives a fixed-width filename from the source path's
// hash, avoiding filesystem path-length limits.
func (c *Cache) cachePath(sourcePath string) string {
	h := xxhash.Sum64String(sourcePath)
	return filepath.Join(c.dir, fmt.Sprintf("%016x.cache", h))
}

func contentHash(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return xxhash.Sum64(data), nil
}

// Get returns the cached cleaned lines for sourcePath, or (nil, false)
// on any cache miss - missing file, version mismatch, config-hash
// mismatch, content-hash mismatch, or a read/parse error.
func (c *Cache) Get(sourcePath string) ([]clean.CleanedLine, bool) {
	data, err := os.ReadFile(c.cachePath(sourcePath))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Version != cacheVersion || entry.ConfigHash != c.configHash {
		return nil, false
	}

	current, err := contentHash(sourcePath)
	if err != nil || current != entry.ContentHash {
		return nil, false
	}

	lines := make([]clean.CleanedLine, len(entry.Lines))
	for i, cl := range entry.Lines {
		lines[i] = clean.CleanedLine{Text: cl.Line, LineNumber: cl.LineNumber, Hash: cl.Hash}
	}
	return lines, true
}

// Put stores lines as the cache entry for sourcePath.
func (c *Cache) Put(sourcePath string, lines []clean.CleanedLine) error {
	hash, err := contentHash(sourcePath)
	if err != nil {
		return err
	}

	cached := make([]cachedLine, len(lines))
	for i, l := range lines {
		cached[i] = cachedLine{Line: l.Text, LineNumber: l.LineNumber, Hash: l.Hash}
	}

	entry := cacheEntry{
		Version:     cacheVersion,
		ContentHash: hash,
		ConfigHash:  c.configHash,
		Lines:       cached,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry for %s: %w", sourcePath, err)
	}
	if err := os.WriteFile(c.cachePath(sourcePath), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry for %s: %w", sourcePath, err)
	}
	return nil
}

// Clear removes every ".cache" file in dir.
func Clear(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory %q: %w", dir, err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".cache" {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing cache file %q: %w", e.Name(), err)
		}
	}
	return nil
}
