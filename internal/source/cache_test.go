package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCacheRoundtrip(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeTempFile(t, dir, "test.c", "int x = 5;\nint y = 10;\n")

	cache, err := NewCache(filepath.Join(dir, "cache"), 42)
	require.NoError(t, err)

	_, ok := cache.Get(sourcePath)
	require.False(t, ok)

	lines := []clean.CleanedLine{
		{Text: "int x = 5;", LineNumber: 1, Hash: 1},
		{Text: "int y = 10;", LineNumber: 2, Hash: 2},
	}
	require.NoError(t, cache.Put(sourcePath, lines))

	got, ok := cache.Get(sourcePath)
	require.True(t, ok)
	require.Equal(t, lines, got)
}

func TestCacheInvalidatesOnContentChange(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeTempFile(t, dir, "test.c", "original content\n")

	cache, err := NewCache(filepath.Join(dir, "cache"), 1)
	require.NoError(t, err)

	lines := []clean.CleanedLine{{Text: "original content", LineNumber: 1, Hash: 1}}
	require.NoError(t, cache.Put(sourcePath, lines))

	_, ok := cache.Get(sourcePath)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(sourcePath, []byte("modified content\n"), 0o644))

	_, ok = cache.Get(sourcePath)
	require.False(t, ok)
}

func TestCacheInvalidatesOnConfigChange(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeTempFile(t, dir, "test.c", "test content\n")
	cacheDir := filepath.Join(dir, "cache")

	cache1, err := NewCache(cacheDir, 3)
	require.NoError(t, err)
	lines := []clean.CleanedLine{{Text: "test content", LineNumber: 1, Hash: 1}}
	require.NoError(t, cache1.Put(sourcePath, lines))
	_, ok := cache1.Get(sourcePath)
	require.True(t, ok)

	cache2, err := NewCache(cacheDir, 5)
	require.NoError(t, err)
	_, ok = cache2.Get(sourcePath)
	require.False(t, ok)
}

func TestClearRemovesAllCacheFiles(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeTempFile(t, dir, "test.c", "test\n")
	cacheDir := filepath.Join(dir, "cache")

	cache, err := NewCache(cacheDir, 1)
	require.NoError(t, err)
	lines := []clean.CleanedLine{{Text: "test", LineNumber: 1, Hash: 1}}
	require.NoError(t, cache.Put(sourcePath, lines))

	_, ok := cache.Get(sourcePath)
	require.True(t, ok)

	require.NoError(t, Clear(cacheDir))

	_, ok = cache.Get(sourcePath)
	require.False(t, ok)
}
