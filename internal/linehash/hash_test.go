package linehash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineStripsControlAndSpaceBytes(t *testing.T) {
	a := Line("int x = 5;")
	b := Line("int\tx=5;")
	require.Equal(t, a, b, "expected equal hashes for whitespace-insensitive lines")
}

func TestLineEmptyIsOffsetBasis(t *testing.T) {
	require.Equal(t, offsetBasis, Line(""))
	require.Equal(t, offsetBasis, Line("   \t  "))
}

func TestLineDeterministic(t *testing.T) {
	require.Equal(t, Line("return x + y;"), Line("return x + y;"))
}

func TestFNV1aKnownConstants(t *testing.T) {
	require.Equal(t, offsetBasis, FNV1a(nil))
}
