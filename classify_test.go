package tridiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLooksBinary(t *testing.T) {
	require.True(t, LooksBinary([]byte("abc\x00def")))
	require.False(t, LooksBinary([]byte("abc def")))
	require.False(t, LooksBinary(nil))
}

func TestSplitLinesTerminated(t *testing.T) {
	lines, final := splitLines([]byte("a\nb\nc\n"))
	require.True(t, final)
	require.Len(t, lines, 3)
	require.Equal(t, "a\n", lines[0].String())
	require.Equal(t, "c\n", lines[2].String())
}

func TestSplitLinesNoFinalNewline(t *testing.T) {
	lines, final := splitLines([]byte("a\nb"))
	require.False(t, final)
	require.Len(t, lines, 2)
	require.False(t, lines[1].hasTerminator())
}

func TestSplitLinesEmpty(t *testing.T) {
	lines, final := splitLines(nil)
	require.Nil(t, lines)
	require.True(t, final)
}

func TestSplitLinesStringPreservesCRLF(t *testing.T) {
	lines, _ := splitLinesString("a\r\nb\r\n")
	require.Equal(t, "a\r\n", lines[0].String())
	require.Equal(t, "b\r\n", lines[1].String())
}
