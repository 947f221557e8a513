package match

// Result aggregates a full detection run's output: every duplicate
// block found plus the summary counters the reporters render.
type Result struct {
	Blocks          []Block
	FilesAnalyzed   int
	TotalLines      int
	DuplicateLines  int
	DuplicateBlocks int
}

// NewResult builds a Result from a flat block list and the file/line
// totals a caller already knows.
func NewResult(blocks []Block, filesAnalyzed, totalLines int) Result {
	duplicateLines := 0
	for _, b := range blocks {
		duplicateLines += b.Count
	}
	return Result{
		Blocks:          blocks,
		FilesAnalyzed:   filesAnalyzed,
		TotalLines:      totalLines,
		DuplicateLines:  duplicateLines,
		DuplicateBlocks: len(blocks),
	}
}
