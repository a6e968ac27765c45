package tridiff

import "fmt"

// ParseError reports a defect found while parsing unified-diff text. It
// always carries a byte offset into the original input; Offset is -1
// when the defect isn't tied to a specific input position (e.g. an
// invalid filename supplied by the caller rather than parsed).
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("tridiff: parse error: %s", e.Msg)
	}
	return fmt.Sprintf("tridiff: parse error at byte %d: %s", e.Offset, e.Msg)
}

// ApplyError reports that a hunk could not be applied: no offset in the
// file matched it, or its nearest match lay before the end of the
// previous hunk's spliced region. The search always covers the whole
// file; there is no setting that limits the displacement. Partial holds
// the output produced before the first unresolved hunk, so callers may
// surface a best-effort conflict view rather than nothing at all.
type ApplyError struct {
	HunkIndex    int
	TriedOffsets []int
	Partial      []byte
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("tridiff: apply error: hunk %d did not match at any of %d tried offset(s)", e.HunkIndex, len(e.TriedOffsets))
}
