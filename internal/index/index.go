// Package index builds the inverted line-hash index used to prune the
// pairwise comparison: two files are only compared when they share at
// least one cleaned-line hash.
package index

import "github.com/toniantunovi/lucidshark-duplo/internal/source"

// Index maps a line hash to every file index that contains a line with
// that hash.
type Index struct {
	byHash map[uint32][]int
}

// Build constructs the inverted index over files.
func Build(files []*source.File) *Index {
	idx := &Index{byHash: make(map[uint32][]int)}
	for fileIdx, f := range files {
		for _, line := range f.Lines() {
			idx.byHash[line.Hash] = append(idx.byHash[line.Hash], fileIdx)
		}
	}
	return idx
}

// MatchingFiles returns the set of file indices that share at least
// one line hash with f.
func (idx *Index) MatchingFiles(f *source.File) map[int]struct{} {
	matching := make(map[int]struct{})
	for _, line := range f.Lines() {
		for _, fileIdx := range idx.byHash[line.Hash] {
			matching[fileIdx] = struct{}{}
		}
	}
	return matching
}
