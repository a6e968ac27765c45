package tridiff

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Apply applies patch to original, returning the resulting bytes. Hunk
// location is bounded by the file's actual length rather than by the
// hunk's declared old-range length (the historical pathological-header
// bug the retrieval pack's fuzzy applier works around): each hunk is
// tried at its preferred offset (its declared old start, shifted by the
// cumulative line-count delta of the hunks already applied) and then
// at increasing displacements from it, smallest displacement first and
// the earlier of two candidates at equal displacement breaking ties,
// until either a match is found or the whole file has been ruled out. A match found before the end of the previous hunk's
// spliced region is rejected as an overlap conflict rather than
// applied. On failure, the returned *ApplyError carries every offset
// that was tried and the output produced by hunks applied before the
// failure.
// An optional logger records tolerated-but-notable conditions (a hunk
// matching away from its preferred offset) at Debug level; omitting it,
// or passing nil, uses a discard sink and costs nothing.
func Apply(original []byte, patch *Patch, logger ...*logrus.Logger) ([]byte, error) {
	lines, _ := splitLines(original)
	out, err := applyHunks(lines, patch.Hunks, pickLogger(logger))
	if err != nil {
		return nil, err
	}
	return joinLines(out), nil
}

// ApplyString is the string-oriented form of Apply.
func ApplyString(original string, patch *Patch, logger ...*logrus.Logger) (string, error) {
	lines, _ := splitLinesString(original)
	out, err := applyHunks(lines, patch.Hunks, pickLogger(logger))
	if err != nil {
		return "", err
	}
	return string(joinLines(out)), nil
}

func pickLogger(logger []*logrus.Logger) *logrus.Logger {
	if len(logger) > 0 && logger[0] != nil {
		return logger[0]
	}
	return discardLogger
}

// applyHunks applies hunks in order, maintaining cursor as the end of
// the last applied hunk's spliced region so that a later hunk whose
// best match falls before it is rejected as an overlap conflict rather
// than silently reapplied over already-patched content.
func applyHunks(lines []Line, hunks []*Hunk, log *logrus.Logger) ([]Line, error) {
	offset := 0
	cursor := 0
	for hi, h := range hunks {
		preferred := h.OldStart + offset
		if h.OldLen > 0 {
			// OldStart names the 1-origin line of the hunk's first body
			// line in this case, so the 0-indexed match position is one
			// less. When OldLen is 0, OldStart already names the 0-
			// indexed position (the line immediately before the
			// insertion, per the GNU convention parse.go and assemble.go
			// both follow), so no shift is applied.
			preferred--
		}
		start, tried, ok := findHunkStart(lines, h, preferred)
		if !ok || start < cursor {
			return nil, &ApplyError{HunkIndex: hi, TriedOffsets: tried, Partial: joinLines(lines)}
		}
		if start != preferred {
			log.WithFields(logrus.Fields{"hunk": hi, "preferred": preferred, "matched": start}).
				Debug("tridiff: hunk matched away from its preferred offset")
		}
		next, delta, err := applyOneHunk(lines, h, start)
		if err != nil {
			return nil, &ApplyError{HunkIndex: hi, TriedOffsets: tried, Partial: joinLines(lines)}
		}
		lines = next
		offset += delta
		cursor = start + h.NewLen
	}
	return lines, nil
}

// hunkMatchLines is the subsequence of h's body that must be found
// verbatim in the target (context and deletion lines); insertions carry
// no obligation on the target and are excluded.
func hunkMatchLines(h *Hunk) []Line {
	out := make([]Line, 0, len(h.Lines))
	for _, l := range h.Lines {
		if l.Kind != LineInsert {
			out = append(out, l.Content)
		}
	}
	return out
}

func matchesAt(lines, from []Line, pos int) bool {
	if pos < 0 || pos+len(from) > len(lines) {
		return false
	}
	for i, fl := range from {
		if !lineEqual(lines[pos+i], fl) {
			return false
		}
	}
	return true
}

// findHunkStart locates where h's context/delete lines occur in lines.
// Candidates are probed in order of increasing |displacement| from
// preferred, with the earlier-offset candidate at a given displacement
// tried before the later one — so of any two matches, the one nearer to
// (and, on a tie, earlier than) the preferred offset always wins. tried
// lists every offset that was actually compared, in probe order, for
// diagnostic use when no match is found.
func findHunkStart(lines []Line, h *Hunk, preferred int) (start int, tried []int, ok bool) {
	from := hunkMatchLines(h)
	if len(from) == 0 {
		switch {
		case preferred < 0:
			return 0, nil, true
		case preferred > len(lines):
			return len(lines), nil, true
		default:
			return preferred, nil, true
		}
	}

	tried = append(tried, preferred)
	if matchesAt(lines, from, preferred) {
		return preferred, tried, true
	}

	maxDisplacement := preferred
	if rest := len(lines) - preferred; rest > maxDisplacement {
		maxDisplacement = rest
	}
	for d := 1; d <= maxDisplacement; d++ {
		if lo := preferred - d; lo >= 0 {
			tried = append(tried, lo)
			if matchesAt(lines, from, lo) {
				return lo, tried, true
			}
		}
		if hi := preferred + d; hi <= len(lines) {
			tried = append(tried, hi)
			if matchesAt(lines, from, hi) {
				return hi, tried, true
			}
		}
	}
	return 0, tried, false
}

// applyOneHunk rewrites lines by applying h starting at start, which
// has already been verified to match h's context/delete lines. It
// returns the new line slice and the net line-count delta (insertions
// minus deletions), used to keep subsequent hunks' preferred offsets
// accurate.
func applyOneHunk(lines []Line, h *Hunk, start int) ([]Line, int, error) {
	out := make([]Line, 0, len(lines)+len(h.Lines))
	out = append(out, lines[:start]...)
	cursor := start
	delta := 0
	for _, hl := range h.Lines {
		switch hl.Kind {
		case LineContext:
			if cursor >= len(lines) || !lineEqual(lines[cursor], hl.Content) {
				return nil, 0, fmt.Errorf("tridiff: hunk context mismatch at line %d", cursor+1)
			}
			out = append(out, lines[cursor])
			cursor++
		case LineDelete:
			if cursor >= len(lines) || !lineEqual(lines[cursor], hl.Content) {
				return nil, 0, fmt.Errorf("tridiff: hunk delete mismatch at line %d", cursor+1)
			}
			cursor++
			delta--
		case LineInsert:
			out = append(out, hl.Content)
			delta++
		}
	}
	out = append(out, lines[cursor:]...)
	return out, delta, nil
}

func joinLines(lines []Line) []byte {
	n := 0
	for _, l := range lines {
		n += len(l.Bytes())
	}
	b := make([]byte, 0, n)
	for _, l := range lines {
		b = append(b, l.Bytes()...)
	}
	return b
}
