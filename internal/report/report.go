// Package report renders a detection Result to one of three sinks:
// a human-readable console report, a JSON structured tree, or an
// attribute-style XML document.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

// Format selects which sink renders the result.
type Format int

const (
	Console Format = iota
	JSON
	XML
)

// Params is the subset of detection configuration the console report
// echoes back to the reader.
type Params struct {
	MinBlockSize          int
	MinChars              int
	BlockPercentThreshold int
}

// Exporter renders a detection result to writer.
type Exporter interface {
	Export(result match.Result, files []*source.File, params Params, writer io.Writer) error
}

// New returns the Exporter for format.
func New(format Format) Exporter {
	switch format {
	case JSON:
		return jsonExporter{}
	case XML:
		return xmlExporter{}
	default:
		return consoleExporter{}
	}
}

// OutputWriter opens the destination for path: "-" means stdout,
// anything else is created (truncating any existing file).
func OutputWriter(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %q: %w", path, err)
	}
	return f, nil
}

// nopCloser wraps a *bufio.Writer so stdout output is flushed on
// Close without closing the underlying stdout stream.
type nopCloser struct {
	w *bufio.Writer
}

func (n nopCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopCloser) Close() error                { return n.w.Flush() }

func duplicationPercent(result match.Result) float64 {
	if result.TotalLines == 0 {
		return 0
	}
	return float64(result.DuplicateLines) / float64(result.TotalLines) * 100
}

type lineRange struct {
	start, end int
}

func blockRange(f *source.File, startLine, count int) lineRange {
	return lineRange{
		start: f.Line(startLine).LineNumber,
		end:   f.Line(startLine + count - 1).LineNumber,
	}
}
