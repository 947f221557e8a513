package match

import "github.com/toniantunovi/lucidshark-duplo/internal/source"

// Params holds the detection-relevant thresholds the matrix scan needs.
type Params struct {
	MinBlockSize          int
	BlockPercentThreshold int
}

// effectiveMinBlockSize computes the minimum run length a match must
// reach to be reported.
//
// This keeps calc_min_block_size's degenerate shape exactly:
// max(B, min(B, X)) always equals B for any X, since min(B, X) <= B.
// The threshold-derived value X is computed and then discarded by the
// outer max/min - preserved as-is rather than "fixed", to keep observed
// behavior over inferred intent.
func effectiveMinBlockSize(p Params, m, n int) int {
	minFromThreshold := 0
	if p.BlockPercentThreshold > 0 {
		longest := m
		if n > longest {
			longest = n
		}
		minFromThreshold = (longest * 100) / p.BlockPercentThreshold
	}

	b := p.MinBlockSize
	x := minFromThreshold
	min := b
	if x < min {
		min = x
	}
	result := b
	if min > result {
		result = min
	}
	return result
}

// Matrix is a reusable scratch buffer for one worker's sequence of
// pairwise comparisons, sized for the largest file seen.
type Matrix struct {
	bits []bool
	m, n int
}

// NewMatrix allocates a matrix capable of holding any pairwise
// comparison up to maxLines x maxLines.
func NewMatrix(maxLines int) *Matrix {
	return &Matrix{bits: make([]bool, maxLines*maxLines)}
}

func (mx *Matrix) reset(m, n int) {
	mx.m, mx.n = m, n
	size := m * n
	for i := 0; i < size; i++ {
		mx.bits[i] = false
	}
}

// ProcessPair compares source1 against source2 (which may be the same
// file, for self-duplicate detection) and returns every duplicate run
// meeting the effective minimum block size.
//
// The vertical and horizontal scans deliberately use two different
// index expressions into the same flattened matrix - matrix[x + n*(y+x)]
// for the vertical pass vs. matrix[x + y + n*y] for the horizontal pass.
// Both are preserved exactly as the reference implementation computes
// them; they are not mathematically equivalent to a single normalized
// indexing and are not unified here.
func ProcessPair(source1, source2 *source.File, source1Idx, source2Idx int, params Params, mx *Matrix) []Block {
	m := source1.NumLines()
	n := source2.NumLines()
	if m == 0 || n == 0 {
		return nil
	}

	mx.reset(m, n)
	for y := 0; y < m; y++ {
		line1 := source1.Line(y)
		for x := 0; x < n; x++ {
			if line1.Hash == source2.Line(x).Hash {
				mx.bits[x+n*y] = true
			}
		}
	}

	minBlockSize := effectiveMinBlockSize(params, m, n)
	isSameFile := source1Idx == source2Idx

	var blocks []Block

	// Vertical diagonal scan.
	for y := 0; y < m; y++ {
		seqLen := 0
		maxX := n
		if m-y < maxX {
			maxX = m - y
		}

		for x := 0; x < maxX; x++ {
			if mx.bits[x+n*(y+x)] {
				seqLen++
				continue
			}
			if seqLen >= minBlockSize {
				line1 := y + x - seqLen
				line2 := x - seqLen
				if !isSameFile || line1 != line2 {
					blocks = append(blocks, Block{source1Idx, source2Idx, line1, line2, seqLen})
				}
			}
			seqLen = 0
		}

		if seqLen >= minBlockSize {
			bound := n
			if m-y < bound {
				bound = m - y
			}
			line1 := y + bound - seqLen
			line2 := bound - seqLen
			if !isSameFile || line1 != line2 {
				blocks = append(blocks, Block{source1Idx, source2Idx, line1, line2, seqLen})
			}
		}
	}

	// Horizontal diagonal scan - only for distinct files.
	if !isSameFile {
		for x := 1; x < n; x++ {
			seqLen := 0
			maxY := m
			if n-x < maxY {
				maxY = n - x
			}

			for y := 0; y < maxY; y++ {
				if mx.bits[x+y+n*y] {
					seqLen++
					continue
				}
				if seqLen >= minBlockSize {
					blocks = append(blocks, Block{source1Idx, source2Idx, y - seqLen, x + y - seqLen, seqLen})
				}
				seqLen = 0
			}

			if seqLen >= minBlockSize {
				blocks = append(blocks, Block{source1Idx, source2Idx, maxY - seqLen, x + maxY - seqLen, seqLen})
			}
		}
	}

	// A self-pair scans only the diagonals below the main one, where the
	// source1 position is the later occurrence; report the earlier one
	// as Line1.
	if isSameFile {
		for k := range blocks {
			blocks[k].Line1, blocks[k].Line2 = blocks[k].Line2, blocks[k].Line1
		}
	}

	return blocks
}
