package source

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
)

// maxBitsPerThread bounds the per-pair comparison matrix to 8 billion
// cells for a single worker thread. The match engine's matrix stores
// one bool (one byte) per cell, so a matrix at this bound takes about
// 8 GB.
const maxBitsPerThread = 8_000_000_000

// LoadFileList reads newline-separated file paths from path, or from
// stdin when path is "-". Lines that trim to 5 characters or fewer are
// discarded as noise (blank lines, stray whitespace).
func LoadFileList(path string) ([]string, error) {
	var scanner *bufio.Scanner
	if path == "-" {
		scanner = bufio.NewScanner(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading file list %s: %w", path, err)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	}
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var files []string
	for scanner.Scan() {
		if len(strings.TrimSpace(scanner.Text())) > 5 {
			files = append(files, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file list %s: %w", path, err)
	}
	return files, nil
}

// Loader loads and cleans source files, optionally through a Cache.
type Loader struct {
	CleanConfig clean.Config
	Cache       *Cache // nil disables caching
	NumThreads  int    // used only in the matrix-too-large error message
	Progress    func(string)
}

func (l *Loader) progress(format string, args ...any) {
	if l.Progress != nil {
		l.Progress(fmt.Sprintf(format, args...))
	}
}

// LoadAll loads every file in fileList, skipping (with a warning) any
// file that can't be read. It returns the loaded files and the maximum
// cleaned-line count across them, after verifying the worst-case
// comparison matrix fits within maxBitsPerThread.
func (l *Loader) LoadAll(fileList []string) ([]*File, int, error) {
	var files []*File
	maxLines := 0
	cacheHits := 0

	for _, path := range fileList {
		if l.Cache != nil {
			if lines, ok := l.Cache.Get(path); ok {
				if len(lines) > 0 {
					sf := FromCleanedLines(path, lines)
					if sf.NumLines() > maxLines {
						maxLines = sf.NumLines()
					}
					files = append(files, sf)
					cacheHits++
				}
				continue
			}
		}

		sf, err := Load(path, l.CleanConfig)
		if err != nil {
			l.progress("Warning: %s", err)
			continue
		}
		if sf.NumLines() == 0 {
			continue
		}

		if l.Cache != nil {
			if err := l.Cache.Put(path, sf.Lines()); err != nil {
				l.progress("Warning: Failed to cache '%s': %s", path, err)
			}
		}

		if sf.NumLines() > maxLines {
			maxLines = sf.NumLines()
		}
		files = append(files, sf)
	}

	if l.Cache != nil && cacheHits > 0 {
		l.progress("Cache: %d hits, %d misses", cacheHits, len(files)-cacheHits)
	}

	if err := checkMemoryBound(files, maxLines, l.NumThreads); err != nil {
		return nil, 0, err
	}

	return files, maxLines, nil
}

func checkMemoryBound(files []*File, maxLines, numThreads int) error {
	required := maxLines * maxLines
	if required <= maxBitsPerThread {
		return nil
	}

	worst := files[0]
	for _, f := range files {
		if f.NumLines() > worst.NumLines() {
			worst = f
		}
	}

	threads := numThreads
	if threads < 1 {
		threads = 1
	}
	maxPermissible := int(math.Sqrt(float64(maxBitsPerThread) / float64(threads)))

	return fmt.Errorf(
		"file %q has %d lines, which would require a comparison matrix too large for %d thread(s) (max permissible: %d lines)",
		worst.Path(), maxLines, threads, maxPermissible,
	)
}
