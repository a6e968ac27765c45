package tridiff

// HunkLineKind classifies one rendered line within a hunk body.
type HunkLineKind int8

const (
	LineContext HunkLineKind = iota
	LineDelete
	LineInsert
)

// HunkLine is one rendered line of a hunk body. Whether it is followed
// by the no-newline sentinel is not stored explicitly: a Line's content
// always includes its terminator except when it is genuinely the final,
// terminator-less line of whichever side(s) it belongs to, so the
// formatter derives the sentinel purely by inspecting content, the same
// way the unified-diff grammar itself represents it.
type HunkLine struct {
	Kind    HunkLineKind
	Content Line
}

// Hunk is a contiguous region of a patch: an old-range start+length, a
// new-range start+length, and an ordered body. Ranges are 1-origin; a
// zero-length range's Start is one less than the first affected line
// number on the other side (GNU convention), which can be 0 for an
// insertion at the start of a file.
type Hunk struct {
	OldStart, OldLen int
	NewStart, NewLen int
	Lines            []HunkLine
}

// Patch is an ordered list of hunks plus the optional filenames for the
// original and modified sides. Absence of a filename is representable:
// HasOriginal/HasModified distinguish "no header for this side" from
// "header present with an empty name". Format renders an absent side as
// /dev/null and always writes both header lines, so a Patch with no
// headers at all does not come back header-less from Format and Parse.
//
// A Patch built by DiffBytes borrows its HunkLine content from the
// caller's input buffers (owned reports false); Clone produces an
// equivalent Patch whose content is independently allocated and safe to
// retain past the lifetime of the original buffers. A Patch built by
// Diff or Parse always owns its content.
type Patch struct {
	Original     string
	HasOriginal  bool
	Modified     string
	HasModified  bool
	Hunks        []*Hunk
	owned        bool
}

// Owned reports whether the patch's hunk-line content is independently
// allocated (true) or borrows from a caller-provided buffer (false).
func (p *Patch) Owned() bool {
	return p == nil || p.owned
}

// Clone returns a Patch with identical structure whose hunk-line content
// is copied into freshly allocated memory, safe to use after any buffer
// the original may have borrowed from is discarded or mutated. Line
// content is copied on every call, including for a Patch that already
// owns its content.
func (p *Patch) Clone() *Patch {
	if p == nil {
		return nil
	}
	out := &Patch{
		Original:    p.Original,
		HasOriginal: p.HasOriginal,
		Modified:    p.Modified,
		HasModified: p.HasModified,
		Hunks:       make([]*Hunk, len(p.Hunks)),
		owned:       true,
	}
	for i, h := range p.Hunks {
		nh := &Hunk{OldStart: h.OldStart, OldLen: h.OldLen, NewStart: h.NewStart, NewLen: h.NewLen}
		nh.Lines = make([]HunkLine, len(h.Lines))
		for j, l := range h.Lines {
			nh.Lines[j] = HunkLine{Kind: l.Kind, Content: l.Content.clone()}
		}
		out.Hunks[i] = nh
	}
	return out
}

// Reverse returns a Patch that undoes p: applying it to p's "after" text
// reproduces p's "before" text. Old and new sides swap throughout —
// filenames, hunk ranges, and each line's Delete/Insert kind — while
// context lines and ownership are unchanged. Reverse(Reverse(p)) is
// structurally identical to p.
func (p *Patch) Reverse() *Patch {
	if p == nil {
		return nil
	}
	out := &Patch{
		Original:    p.Modified,
		HasOriginal: p.HasModified,
		Modified:    p.Original,
		HasModified: p.HasOriginal,
		Hunks:       make([]*Hunk, len(p.Hunks)),
		owned:       p.owned,
	}
	for i, h := range p.Hunks {
		nh := &Hunk{OldStart: h.NewStart, OldLen: h.NewLen, NewStart: h.OldStart, NewLen: h.OldLen}
		nh.Lines = make([]HunkLine, len(h.Lines))
		for j, l := range h.Lines {
			kind := l.Kind
			switch kind {
			case LineDelete:
				kind = LineInsert
			case LineInsert:
				kind = LineDelete
			}
			nh.Lines[j] = HunkLine{Kind: kind, Content: l.Content}
		}
		out.Hunks[i] = nh
	}
	return out
}

// NoNewlineMessage configures how (or whether) the no-newline sentinel
// is rendered.
type NoNewlineMessage struct {
	// Suppress, when true, omits the sentinel line entirely while the
	// formatter still computes byte-correct output otherwise.
	Suppress bool
	// Text overrides the sentinel text. Ignored when Suppress is true.
	// Zero value means the default, "\ No newline at end of file".
	Text string
}

const defaultNoNewlineText = `\ No newline at end of file`

func (m NoNewlineMessage) text() string {
	if m.Text == "" {
		return defaultNoNewlineText
	}
	return m.Text
}

// Options configures diff computation and formatting.
type Options struct {
	// ContextLen is the number of unchanged lines of context kept on
	// each side of a change run. Zero means "use the default" (3); use
	// ContextZero to request an explicit zero-context diff.
	ContextLen int
	ContextZero bool

	OriginalFilename string
	ModifiedFilename string

	// SuppressBlankEmpty renders all-blank context lines (bare
	// terminator) without a leading space, matching GNU diff.
	SuppressBlankEmpty bool

	MissingNewlineMessage NoNewlineMessage

	Algorithm Algorithm

	logger *logrusLogger
}

// Validate returns a copy of o with defaults filled in.
func (o Options) Validate() Options {
	out := o
	if out.ContextLen == 0 && !out.ContextZero {
		out.ContextLen = 3
	}
	if out.OriginalFilename == "" {
		out.OriginalFilename = "original"
	}
	if out.ModifiedFilename == "" {
		out.ModifiedFilename = "modified"
	}
	if out.Algorithm == AlgorithmDefault {
		out.Algorithm = AlgorithmMyers
	}
	return out
}

func (o Options) contextLen() int {
	if o.ContextZero {
		return 0
	}
	if o.ContextLen <= 0 {
		return 3
	}
	return o.ContextLen
}

// MergeStyle selects how conflict regions are bracketed.
type MergeStyle int

const (
	// StyleDefault emits only ours/theirs, minimizing common
	// prefix/suffix lines inside the conflict body.
	StyleDefault MergeStyle = iota
	// StyleDiff3 additionally emits the ancestor's text between ours
	// and theirs, with the full ours/theirs spans left inside the
	// markers (no common-prefix/suffix minimization).
	StyleDiff3
	// StyleZealousDiff3 is StyleDiff3 with the common-prefix/suffix
	// minimization StyleDefault performs.
	StyleZealousDiff3
)

// MergeOptions configures three-way merge.
type MergeOptions struct {
	LabelOurs     string
	LabelAncestor string
	LabelTheirs   string
	Style         MergeStyle
	Algorithm     Algorithm
}

const (
	conflictMarkerOurs     = "<<<<<<<"
	conflictMarkerAncestor = "|||||||"
	conflictMarkerSep      = "======="
	conflictMarkerTheirs   = ">>>>>>>"
)

// Validate returns a copy of o with defaults filled in. Conflict
// markers always render with a space before a non-empty label (see
// writeConflict), so labels here are plain text with no leading space
// of their own.
func (o MergeOptions) Validate() MergeOptions {
	out := o
	if out.LabelOurs == "" {
		out.LabelOurs = "ours"
	}
	if out.LabelAncestor == "" {
		out.LabelAncestor = "original"
	}
	if out.LabelTheirs == "" {
		out.LabelTheirs = "theirs"
	}
	if out.Algorithm == AlgorithmDefault {
		out.Algorithm = AlgorithmHistogram
	}
	return out
}
