package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

type jsonFileRef struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

type jsonDuplicate struct {
	LineCount int         `json:"line_count"`
	File1     jsonFileRef `json:"file1"`
	File2     jsonFileRef `json:"file2"`
	Lines     []string    `json:"lines"`
}

type jsonSummary struct {
	FilesAnalyzed       int     `json:"files_analyzed"`
	TotalLines          int     `json:"total_lines"`
	DuplicateBlocks     int     `json:"duplicate_blocks"`
	DuplicateLines      int     `json:"duplicate_lines"`
	DuplicationPercent  float64 `json:"duplication_percent"`
}

type jsonOutput struct {
	Duplicates []jsonDuplicate `json:"duplicates"`
	Summary    jsonSummary     `json:"summary"`
}

// jsonExporter renders the structured-tree sink: a JSON document with
// one entry per duplicate block and a trailing summary object.
type jsonExporter struct{}

func (jsonExporter) Export(result match.Result, files []*source.File, _ Params, w io.Writer) error {
	duplicates := make([]jsonDuplicate, len(result.Blocks))
	for i, b := range result.Blocks {
		source1 := files[b.Source1Idx]
		source2 := files[b.Source2Idx]
		r1 := blockRange(source1, b.Line1, b.Count)
		r2 := blockRange(source2, b.Line2, b.Count)

		duplicates[i] = jsonDuplicate{
			LineCount: b.Count,
			File1:     jsonFileRef{Path: source1.Path(), StartLine: r1.start, EndLine: r1.end},
			File2:     jsonFileRef{Path: source2.Path(), StartLine: r2.start, EndLine: r2.end},
			Lines:     source1.LineTexts(b.Line1, b.Line1+b.Count),
		}
	}

	out := jsonOutput{
		Duplicates: duplicates,
		Summary: jsonSummary{
			FilesAnalyzed:      result.FilesAnalyzed,
			TotalLines:         result.TotalLines,
			DuplicateBlocks:    result.DuplicateBlocks,
			DuplicateLines:     result.DuplicateLines,
			DuplicationPercent: duplicationPercent(result),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
