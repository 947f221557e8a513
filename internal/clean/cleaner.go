// Package clean implements the per-language line cleaner: raw text lines
// in, cleaned lines with their original line numbers out. Dispatch is by
// file extension, matching the dispatch table a reader would expect from
// a multi-language source scanner.
package clean

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/toniantunovi/lucidshark-duplo/internal/linehash"
)

// CleanedLine is a single surviving line after language-specific
// cleaning: comment stripping, directive/signature filtering, and
// whitespace trimming.
type CleanedLine struct {
	Text       string
	LineNumber int // 1-indexed, refers to the pre-cleaning source position
	Hash       uint32
}

func newCleanedLine(text string, lineNumber int) CleanedLine {
	return CleanedLine{Text: text, LineNumber: lineNumber, Hash: linehash.Line(text)}
}

// Config holds the cleaning-relevant options. Only MinChars affects
// cleaning output; everything else in the application config is
// detection-only and must not be threaded in here (see
// Config.CleaningConfigHash in internal/config).
type Config struct {
	MinChars int
}

// Cleaner turns raw source lines into CleanedLines.
type Cleaner interface {
	Clean(lines []string) []CleanedLine
}

// New dispatches on the file extension (case-insensitive) and returns
// the appropriate Cleaner. Unrecognized extensions get the fallback
// Unknown cleaner.
func New(filename string, cfg Config) Cleaner {
	ext := strings.ToLower(filepath.Ext(filename))
	ext = strings.TrimPrefix(ext, ".")

	switch ext {
	case "c", "cpp", "cxx", "cc", "h", "hpp", "hxx", "hh":
		return &CFamily{MinChars: cfg.MinChars}
	case "java":
		return &Java{MinChars: cfg.MinChars}
	case "cs":
		return &CSharp{MinChars: cfg.MinChars}
	case "vb":
		return &VB{MinChars: cfg.MinChars}
	case "erl", "hrl":
		return &Erlang{MinChars: cfg.MinChars}
	case "py", "pyw", "pyi":
		return &Python{MinChars: cfg.MinChars}
	case "rs":
		return &Rust{MinChars: cfg.MinChars}
	case "js", "jsx", "ts", "tsx", "mjs", "cjs":
		return &JavaScript{MinChars: cfg.MinChars}
	case "html", "htm", "xhtml":
		return &HTML{MinChars: cfg.MinChars}
	case "css", "scss", "less":
		return &CSS{MinChars: cfg.MinChars}
	default:
		return &Unknown{MinChars: cfg.MinChars}
	}
}

// isValidLine applies the shared length/alphabetic acceptance rule: the
// cleaned text must have at least minChars characters and contain at
// least one alphabetic rune.
func isValidLine(line string, minChars int) bool {
	if len(line) < minChars {
		return false
	}
	for _, r := range line {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func cleanWhitespace(line string) string {
	return strings.TrimSpace(line)
}
