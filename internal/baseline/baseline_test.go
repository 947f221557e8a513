package baseline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
	"github.com/toniantunovi/lucidshark-duplo/internal/linehash"
	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

func testSourceFiles() []*source.File {
	lines := []clean.CleanedLine{
		{Text: "int x = 5;", LineNumber: 1, Hash: linehash.Line("int x = 5;")},
		{Text: "int y = 10;", LineNumber: 2, Hash: linehash.Line("int y = 10;")},
		{Text: "return x + y;", LineNumber: 3, Hash: linehash.Line("return x + y;")},
	}
	return []*source.File{
		source.FromCleanedLines("a.c", append([]clean.CleanedLine{}, lines...)),
		source.FromCleanedLines("b.c", append([]clean.CleanedLine{}, lines...)),
	}
}

func TestEntryNormalizesFileOrder(t *testing.T) {
	e1 := NewEntry("b.c", "a.c", 123, 5)
	e2 := NewEntry("a.c", "b.c", 123, 5)

	require.Equal(t, "a.c", e1.File1)
	require.Equal(t, "b.c", e1.File2)
	require.Equal(t, e1, e2)
}

func TestFromResult(t *testing.T) {
	files := testSourceFiles()
	result := match.NewResult([]match.Block{{Source1Idx: 0, Source2Idx: 1, Line1: 0, Line2: 0, Count: 3}}, 2, 6)

	bl := FromResult(result, files, 12345)

	require.Equal(t, 1, bl.Version)
	require.Equal(t, uint64(12345), bl.ConfigHash)
	require.Len(t, bl.Entries, 1)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.json")

	files := testSourceFiles()
	result := match.NewResult([]match.Block{{Source1Idx: 0, Source2Idx: 1, Line1: 0, Line2: 0, Count: 3}}, 2, 6)
	bl := FromResult(result, files, 12345)

	require.NoError(t, Save(bl, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, bl.Version, loaded.Version)
	require.Equal(t, bl.ConfigHash, loaded.ConfigHash)
	require.Len(t, loaded.Entries, len(bl.Entries))
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.json")
	bl := Baseline{Version: 99, ConfigHash: 1}
	require.NoError(t, Save(bl, path))

	_, err := Load(path)
	require.Error(t, err)
	var mismatch *ErrVersionMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestContains(t *testing.T) {
	files := testSourceFiles()
	block := match.Block{Source1Idx: 0, Source2Idx: 1, Line1: 0, Line2: 0, Count: 3}
	result := match.NewResult([]match.Block{block}, 2, 6)
	bl := FromResult(result, files, 12345)

	require.True(t, bl.Contains(block, files))

	differentBlock := match.Block{Source1Idx: 0, Source2Idx: 1, Line1: 1, Line2: 1, Count: 2}
	require.False(t, bl.Contains(differentBlock, files))
}

func TestFilterNew(t *testing.T) {
	files := testSourceFiles()
	known := match.Block{Source1Idx: 0, Source2Idx: 1, Line1: 0, Line2: 0, Count: 2}
	bl := FromResult(match.NewResult([]match.Block{known}, 2, 6), files, 12345)

	newBlock := match.Block{Source1Idx: 0, Source2Idx: 1, Line1: 1, Line2: 1, Count: 2}
	result := match.NewResult([]match.Block{known, newBlock}, 2, 6)

	filtered := bl.FilterNew(result, files)
	require.Equal(t, 1, filtered.DuplicateBlocks)
}
