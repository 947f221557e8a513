package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

// xmlExporter renders the tagged key/value sink: an attribute-style XML
// document, built by hand rather than through encoding/xml since the
// element shapes here (self-closing <block/> tags, an xml:space
// attribute, a trailing multi-line <summary .../> with no body) don't
// map cleanly onto encoding/xml's struct-tag model.
type xmlExporter struct{}

func (xmlExporter) Export(result match.Result, files []*source.File, _ Params, w io.Writer) error {
	fmt.Fprintln(w, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(w, "<duplo>")

	for _, b := range result.Blocks {
		source1 := files[b.Source1Idx]
		source2 := files[b.Source2Idx]
		r1 := blockRange(source1, b.Line1, b.Count)
		r2 := blockRange(source2, b.Line2, b.Count)

		fmt.Fprintf(w, "  <set LineCount=\"%d\">\n", b.Count)
		fmt.Fprintf(w, "    <block SourceFile=\"%s\" StartLineNumber=\"%d\" EndLineNumber=\"%d\"/>\n",
			escapeXML(source1.Path()), r1.start, r1.end)
		fmt.Fprintf(w, "    <block SourceFile=\"%s\" StartLineNumber=\"%d\" EndLineNumber=\"%d\"/>\n",
			escapeXML(source2.Path()), r2.start, r2.end)

		fmt.Fprintln(w, `    <lines xml:space="preserve">`)
		for _, line := range source1.LineTexts(b.Line1, b.Line1+b.Count) {
			fmt.Fprintf(w, "      <line Text=\"%s\"/>\n", escapeXML(line))
		}
		fmt.Fprintln(w, "    </lines>")
		fmt.Fprintln(w, "  </set>")
	}

	fmt.Fprintln(w, "  <summary")
	fmt.Fprintf(w, "    FilesAnalyzed=\"%d\"\n", result.FilesAnalyzed)
	fmt.Fprintf(w, "    TotalLines=\"%d\"\n", result.TotalLines)
	fmt.Fprintf(w, "    DuplicateBlocks=\"%d\"\n", result.DuplicateBlocks)
	fmt.Fprintf(w, "    DuplicateLines=\"%d\"\n", result.DuplicateLines)
	if result.TotalLines > 0 {
		fmt.Fprintf(w, "    DuplicationPercent=\"%.1f\"\n", duplicationPercent(result))
	}
	fmt.Fprintln(w, "  />")

	fmt.Fprintln(w, "</duplo>")
	return nil
}

var xmlEscapes = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscapes.Replace(s)
}
