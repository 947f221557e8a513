// Package baseline implements save/load/compare of a prior detection
// run, letting callers suppress already-known duplicates and report
// only newly introduced ones.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

// version is the on-disk baseline format version.
const version = 1

// ErrVersionMismatch is returned by Load when the file's format
// version does not match the version this binary writes.
type ErrVersionMismatch struct {
	Found, Expected int
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("baseline format version %d does not match expected version %d", e.Found, e.Expected)
}

// Entry is a single known duplicate, normalized so file order doesn't
// matter for comparison.
type Entry struct {
	File1       string `json:"file1"`
	File2       string `json:"file2"`
	ContentHash uint64 `json:"content_hash"`
	LineCount   int    `json:"line_count"`
}

// NewEntry builds an Entry with its file pair sorted lexicographically,
// so two detections of the same duplicate in either file order produce
// an identical entry.
func NewEntry(file1, file2 string, contentHash uint64, lineCount int) Entry {
	if file1 > file2 {
		file1, file2 = file2, file1
	}
	return Entry{File1: file1, File2: file2, ContentHash: contentHash, LineCount: lineCount}
}

// Baseline is a saved snapshot of known duplicates plus the detection
// configuration hash that produced it.
type Baseline struct {
	Version    int     `json:"version"`
	ConfigHash uint64  `json:"config_hash"`
	Entries    []Entry `json:"entries"`
}

// FromResult builds a Baseline from a fresh detection result.
func FromResult(result match.Result, files []*source.File, configHash uint64) Baseline {
	entries := make([]Entry, len(result.Blocks))
	for i, b := range result.Blocks {
		file1 := files[b.Source1Idx].Path()
		file2 := files[b.Source2Idx].Path()
		entries[i] = NewEntry(file1, file2, blockContentHash(b, files), b.Count)
	}
	return Baseline{Version: version, ConfigHash: configHash, Entries: entries}
}

// blockContentHash fingerprints a block by hashing the line hashes of
// its matched run, giving a fuzzy match that survives line-number
// shifts elsewhere in the file.
func blockContentHash(b match.Block, files []*source.File) uint64 {
	src := files[b.Source1Idx]
	digest := xxhash.New()
	buf := make([]byte, 4)
	for i := 0; i < b.Count; i++ {
		h := src.Line(b.Line1 + i).Hash
		buf[0] = byte(h)
		buf[1] = byte(h >> 8)
		buf[2] = byte(h >> 16)
		buf[3] = byte(h >> 24)
		digest.Write(buf)
	}
	return digest.Sum64()
}

// Contains reports whether block already appears in the baseline,
// matched by normalized file pair and content hash.
func (bl Baseline) Contains(b match.Block, files []*source.File) bool {
	file1 := files[b.Source1Idx].Path()
	file2 := files[b.Source2Idx].Path()
	if file1 > file2 {
		file1, file2 = file2, file1
	}
	contentHash := blockContentHash(b, files)

	for _, e := range bl.Entries {
		if e.File1 == file1 && e.File2 == file2 && e.ContentHash == contentHash {
			return true
		}
	}
	return false
}

// FilterNew returns result with every block already present in the
// baseline removed, recomputing the summary counters.
func (bl Baseline) FilterNew(result match.Result, files []*source.File) match.Result {
	var kept []match.Block
	for _, b := range result.Blocks {
		if !bl.Contains(b, files) {
			kept = append(kept, b)
		}
	}
	return match.NewResult(kept, result.FilesAnalyzed, result.TotalLines)
}

// Save writes baseline as pretty-printed JSON to path.
func Save(bl Baseline, path string) error {
	data, err := json.MarshalIndent(bl, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing baseline file %q: %w", path, err)
	}
	return nil
}

// Load reads and validates a baseline file, failing with
// ErrVersionMismatch if its format version doesn't match.
func Load(path string) (Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Baseline{}, fmt.Errorf("opening baseline file %q: %w", path, err)
	}

	var bl Baseline
	if err := json.Unmarshal(data, &bl); err != nil {
		return Baseline{}, fmt.Errorf("parsing baseline file: %w", err)
	}

	if bl.Version != version {
		return Baseline{}, &ErrVersionMismatch{Found: bl.Version, Expected: version}
	}
	return bl, nil
}
