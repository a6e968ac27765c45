package tridiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The following cases are the concrete end-to-end scenarios named
// directly: a single substitution with default context, a pure
// insertion into an empty file with no trailing newline, a narrowed
// context radius, a malformed declared hunk length that must fail fast
// rather than hang, a genuine three-way conflict, and a clean
// three-way merge.

func TestScenarioS1SingleLineSubstitution(t *testing.T) {
	a := "a\nb\nc\n"
	b := "a\nB\nc\n"
	patch, err := Diff(a, b, Options{})
	require.NoError(t, err)
	require.Len(t, patch.Hunks, 1)
	out := Format(patch, Options{})
	require.Contains(t, out, "@@ -1,3 +1,3 @@\n")
	require.Contains(t, out, " a\n-b\n+B\n c\n")

	applied, err := ApplyString(a, patch)
	require.NoError(t, err)
	require.Equal(t, b, applied)
}

func TestScenarioS2InsertIntoEmptyFileNoTrailingNewline(t *testing.T) {
	a := ""
	b := "x"
	patch, err := Diff(a, b, Options{})
	require.NoError(t, err)
	require.Len(t, patch.Hunks, 1)
	out := Format(patch, Options{})
	require.Contains(t, out, "@@ -0,0 +1 @@\n")
	require.Contains(t, out, "+x\n\\ No newline at end of file\n")

	applied, err := ApplyString(a, patch)
	require.NoError(t, err)
	require.Equal(t, b, applied)
}

func TestScenarioS3NarrowedContextRadius(t *testing.T) {
	a := "a\nb\nc\nd\ne\n"
	b := "a\nb\nc\nD\ne\n"
	patch, err := Diff(a, b, Options{ContextLen: 1})
	require.NoError(t, err)
	require.Len(t, patch.Hunks, 1)
	out := Format(patch, Options{ContextLen: 1})
	require.Contains(t, out, "@@ -3,3 +3,3 @@\n")
	require.Contains(t, out, " c\n-d\n+D\n e\n")
}

func TestScenarioS4MalformedDeclaredLengthFailsFastNoPanic(t *testing.T) {
	// Header falsely declares 99999 old lines; the body only has one
	// delete line that doesn't occur anywhere in the one-line base. The
	// search must still be bounded by the base's actual length (one
	// line), not by the declared range, so this resolves to an apply
	// error immediately rather than scanning (or panicking).
	src := "@@ -1,99999 +1,1 @@\n-nonexistent\n+x\n"
	patch, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, patch.Hunks, 1)
	require.Equal(t, 1, patch.Hunks[0].OldLen)

	_, err = ApplyString("y\n", patch)
	require.Error(t, err)
	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	require.Equal(t, 0, applyErr.HunkIndex)
	require.LessOrEqual(t, len(applyErr.TriedOffsets), 2)
}

func TestScenarioS5ThreeWayConflict(t *testing.T) {
	ancestor := "1\n2\n3\n"
	ours := "1\nA\n3\n"
	theirs := "1\nB\n3\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{})
	require.NoError(t, err)
	require.True(t, conflict)
	require.Contains(t, merged, "<<<<<<< ours\n")
	require.Contains(t, merged, "A\n")
	require.Contains(t, merged, "=======\n")
	require.Contains(t, merged, "B\n")
	require.Contains(t, merged, ">>>>>>> theirs\n")
}

func TestScenarioS6ThreeWayCleanMerge(t *testing.T) {
	ancestor := "1\n2\n3\n"
	ours := "1\n2\n3\n4\n"
	theirs := "0\n1\n2\n3\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{})
	require.NoError(t, err)
	require.False(t, conflict)
	require.Equal(t, "0\n1\n2\n3\n4\n", merged)
}
