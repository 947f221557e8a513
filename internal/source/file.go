// Package source loads raw files from disk, runs them through the
// language-appropriate cleaner, and exposes the resulting cleaned-line
// sequence that the match engine compares.
package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
)

// File is a loaded and cleaned source file: its cleaned lines are what
// the match engine compares, never the raw text.
type File struct {
	path  string
	lines []clean.CleanedLine
}

// Load reads path from disk and cleans it according to cfg.
func Load(path string, cfg clean.Config) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var raw []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cleaner := clean.New(path, cfg)
	return &File{path: path, lines: cleaner.Clean(raw)}, nil
}

// FromCleanedLines builds a File directly from already-cleaned lines,
// bypassing disk I/O and cleaning - used to materialize cache hits.
func FromCleanedLines(path string, lines []clean.CleanedLine) *File {
	return &File{path: path, lines: lines}
}

// Path returns the file's full path.
func (f *File) Path() string { return f.path }

// Basename returns the file name without its directory component.
func (f *File) Basename() string { return filepath.Base(f.path) }

// NumLines returns the number of cleaned lines.
func (f *File) NumLines() int { return len(f.lines) }

// Line returns the cleaned line at the given 0-indexed position.
func (f *File) Line(i int) clean.CleanedLine { return f.lines[i] }

// Lines returns all cleaned lines.
func (f *File) Lines() []clean.CleanedLine { return f.lines }

// LineTexts returns the cleaned text of lines in [start, end).
func (f *File) LineTexts(start, end int) []string {
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, f.lines[i].Text)
	}
	return out
}

// HasSameBasename reports whether f and other share a basename,
// supporting the -d/--ignore-same-name flag.
func (f *File) HasSameBasename(other *File) bool {
	return f.Basename() == other.Basename()
}
