// Package discovery implements the external file-discovery
// collaborators the core duplicate-detection engine consumes: plain
// directory walking, a text file-list, and git-based discovery.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var supportedExtensions = map[string]bool{
	".c": true, ".cpp": true, ".cxx": true, ".cc": true,
	".h": true, ".hpp": true, ".hxx": true, ".hh": true,
	".java": true,
	".cs":   true,
	".py":   true, ".pyw": true, ".pyi": true,
	".rs": true,
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".mjs": true, ".cjs": true,
	".html": true, ".htm": true, ".xhtml": true,
	".css": true, ".scss": true, ".less": true,
	".vb":  true,
	".erl": true, ".hrl": true,
}

// IsSupportedExtension reports whether path's extension
// (case-insensitive) names a language the line cleaners recognize. It
// gates directory discovery only: the walk skips files with other
// extensions, while files named in a file list are cleaned whatever
// their extension (unrecognized ones by the Unknown cleaner).
func IsSupportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return supportedExtensions[ext]
}

// Walker walks a set of root paths, collecting files whose extension
// is recognized and that don't match an exclude glob, using real glob
// semantics for exclusion instead of substring matching.
type Walker struct {
	Roots    []string
	Excludes []string // doublestar glob patterns, e.g. "**/vendor/**", "*_test.go"
	Progress func(string)
}

func (w *Walker) progress(format string, args ...any) {
	if w.Progress != nil {
		w.Progress(fmt.Sprintf(format, args...))
	}
}

// Walk traverses every root and returns the discovered file paths.
func (w *Walker) Walk() ([]string, error) {
	var files []string
	for _, root := range w.Roots {
		found, err := w.walkRoot(root)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
		files = append(files, found...)
	}
	w.progress("Discovered %d source files", len(files))
	return files, nil
}

func (w *Walker) walkRoot(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.progress("Warning: skipping %s: %s", path, err)
			return nil
		}

		if w.isExcluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !IsSupportedExtension(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

func (w *Walker) isExcluded(path string) bool {
	slashPath := filepath.ToSlash(path)
	for _, pattern := range w.Excludes {
		if matched, _ := doublestar.Match(pattern, slashPath); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}

// pathExists reports whether path names an existing, readable file.
// Used by git-mode discovery to drop tracked-but-deleted paths.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
