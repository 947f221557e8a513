// Package match implements the pairwise diagonal-scan duplicate finder:
// build a boolean equality matrix between two files' cleaned lines, then
// walk its diagonals to extract maximal runs of matching lines.
package match

// Block is a detected duplicate run between two files.
type Block struct {
	Source1Idx int
	Source2Idx int
	Line1      int // starting line index in source1 (0-indexed into cleaned lines)
	Line2      int // starting line index in source2 (0-indexed into cleaned lines)
	Count      int
}

// IsSelfDuplicate reports whether this block is within a single file.
func (b Block) IsSelfDuplicate() bool {
	return b.Source1Idx == b.Source2Idx
}

// End1 is the exclusive ending line index in source1.
func (b Block) End1() int { return b.Line1 + b.Count }

// End2 is the exclusive ending line index in source2.
func (b Block) End2() int { return b.Line2 + b.Count }
