package report

import (
	"fmt"
	"io"

	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

// consoleExporter renders the human-readable report: per-block
// "path1(start-end) <-> path2(start-end)" headers with the duplicated
// lines indented beneath, followed by a configuration echo and a
// summary.
type consoleExporter struct{}

func (consoleExporter) Export(result match.Result, files []*source.File, params Params, w io.Writer) error {
	for _, b := range result.Blocks {
		source1 := files[b.Source1Idx]
		source2 := files[b.Source2Idx]

		r1 := blockRange(source1, b.Line1, b.Count)
		r2 := blockRange(source2, b.Line2, b.Count)

		if _, err := fmt.Fprintf(w, "%s(%d-%d) <-> %s(%d-%d)\n",
			source1.Path(), r1.start, r1.end, source2.Path(), r2.start, r2.end); err != nil {
			return err
		}

		for _, line := range source1.LineTexts(b.Line1, b.Line1+b.Count) {
			if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Configuration:"); err != nil {
		return err
	}
	fmt.Fprintf(w, "  Minimum block size: %d lines\n", params.MinBlockSize)
	fmt.Fprintf(w, "  Minimum characters per line: %d\n", params.MinChars)
	fmt.Fprintf(w, "  Block percentage threshold: %d%%\n", params.BlockPercentThreshold)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Files analyzed: %d\n", result.FilesAnalyzed)
	fmt.Fprintf(w, "  Total lines: %d\n", result.TotalLines)
	fmt.Fprintf(w, "  Duplicate blocks: %d\n", result.DuplicateBlocks)
	fmt.Fprintf(w, "  Duplicate lines: %d\n", result.DuplicateLines)
	if result.TotalLines > 0 {
		fmt.Fprintf(w, "  Duplication: %.1f%%\n", duplicationPercent(result))
	}

	return nil
}
