package tridiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeIdentityNoChanges(t *testing.T) {
	text := "a\nb\nc\n"
	merged, conflict, err := Merge(text, text, text, MergeOptions{})
	require.NoError(t, err)
	require.False(t, conflict)
	require.Equal(t, text, merged)
}

func TestMergeOneSideOnlyTakesThatSide(t *testing.T) {
	ancestor := "a\nb\nc\n"
	ours := "a\nB\nc\n"
	theirs := "a\nb\nc\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{})
	require.NoError(t, err)
	require.False(t, conflict)
	require.Equal(t, ours, merged)
}

func TestMergeFalseConflictSuppressed(t *testing.T) {
	// Both sides make the identical edit; this must not be reported as a
	// conflict even though both touched the same ancestor span.
	ancestor := "a\nb\nc\n"
	ours := "a\nX\nc\n"
	theirs := "a\nX\nc\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{})
	require.NoError(t, err)
	require.False(t, conflict)
	require.Equal(t, ours, merged)
}

func TestMergeGenuineConflictDefaultStyle(t *testing.T) {
	ancestor := "H\nold1\nold2\nT\n"
	ours := "H\nsame\nOURS\nT\n"
	theirs := "H\nsame\nTHEIRS\nT\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{})
	require.NoError(t, err)
	require.True(t, conflict)
	want := "H\nsame\n<<<<<<< ours\nOURS\n=======\nTHEIRS\n>>>>>>> theirs\nT\n"
	require.Equal(t, want, merged)
}

func TestMergeGenuineConflictDiff3Style(t *testing.T) {
	ancestor := "H\nold1\nold2\nT\n"
	ours := "H\nsame\nOURS\nT\n"
	theirs := "H\nsame\nTHEIRS\nT\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{Style: StyleDiff3})
	require.NoError(t, err)
	require.True(t, conflict)
	want := "H\n<<<<<<< ours\nsame\nOURS\n||||||| original\nold1\nold2\n=======\nsame\nTHEIRS\n>>>>>>> theirs\nT\n"
	require.Equal(t, want, merged)
}

func TestMergeGenuineConflictZealousDiff3Style(t *testing.T) {
	ancestor := "H\nold1\nold2\nT\n"
	ours := "H\nsame\nOURS\nT\n"
	theirs := "H\nsame\nTHEIRS\nT\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{Style: StyleZealousDiff3})
	require.NoError(t, err)
	require.True(t, conflict)
	want := "H\nsame\n<<<<<<< ours\nOURS\n||||||| original\nold1\nold2\n=======\nTHEIRS\n>>>>>>> theirs\nT\n"
	require.Equal(t, want, merged)
}

func TestMergeCustomLabels(t *testing.T) {
	ancestor := "a\nold\nb\n"
	ours := "a\nOURS\nb\n"
	theirs := "a\nTHEIRS\nb\n"
	merged, conflict, err := Merge(ancestor, ours, theirs, MergeOptions{
		LabelOurs: "mine", LabelAncestor: "base", LabelTheirs: "yours",
	})
	require.NoError(t, err)
	require.True(t, conflict)
	require.Contains(t, merged, "<<<<<<< mine\n")
	require.Contains(t, merged, ">>>>>>> yours\n")
}

func TestHasConflictMatchesMergeOutcome(t *testing.T) {
	ancestor := "H\nold1\nold2\nT\n"
	ours := "H\nsame\nOURS\nT\n"
	theirs := "H\nsame\nTHEIRS\nT\n"
	has, err := HasConflict(ancestor, ours, theirs)
	require.NoError(t, err)
	require.True(t, has)

	has, err = HasConflict("a\nb\n", "a\nX\n", "a\nX\n")
	require.NoError(t, err)
	require.False(t, has)
}

func TestMergeBytesMatchesMergeString(t *testing.T) {
	ancestor := "a\nb\nc\n"
	ours := "a\nB\nc\n"
	theirs := "a\nb\nc\n"
	strMerged, strConflict, err := Merge(ancestor, ours, theirs, MergeOptions{})
	require.NoError(t, err)
	byteMerged, byteConflict, err := MergeBytes([]byte(ancestor), []byte(ours), []byte(theirs), MergeOptions{})
	require.NoError(t, err)
	require.Equal(t, strMerged, string(byteMerged))
	require.Equal(t, strConflict, byteConflict)
}
