package tridiff

import "unicode/utf8"

// Diff computes a unified-diff Patch between two text buffers. Go's
// string-to-[]byte conversion always copies, so the returned Patch's
// line content is already independently allocated (Owned reports true)
// even though it takes the same code path as DiffBytes internally.
func Diff(a, b string, opts Options) (*Patch, error) {
	return diff([]byte(a), []byte(b), opts, true, true)
}

// DiffBytes computes a unified-diff Patch between two byte buffers, with
// no encoding assumed. The returned Patch borrows from a and b directly
// (Owned reports false); call Clone if the patch must outlive those
// buffers or they may be mutated.
func DiffBytes(a, b []byte, opts Options) (*Patch, error) {
	return diff(a, b, opts, false, false)
}

func diff(a, b []byte, opts Options, textMode, owned bool) (*Patch, error) {
	if LooksBinary(a) || LooksBinary(b) {
		opts.log().Debug("tridiff: binary content detected, rejecting diff")
		return nil, ErrBinary
	}
	opts = opts.Validate()
	opts.log().WithField("algorithm", opts.Algorithm).Debug("tridiff: computing diff")
	if textMode && (!utf8.ValidString(opts.OriginalFilename) || !utf8.ValidString(opts.ModifiedFilename)) {
		return nil, &ParseError{Offset: -1, Msg: "filename is not valid UTF-8"}
	}

	linesA, finalNLA := splitLines(a)
	linesB, finalNLB := splitLines(b)

	var changes []Change
	switch opts.Algorithm {
	case AlgorithmHistogram:
		changes = ComputeHistogram(linesA, linesB)
	case AlgorithmPatience:
		changes = ComputePatience(linesA, linesB)
	default:
		changes = ComputeSES(linesA, linesB, lineEqual)
	}

	hunks := assembleHunks(linesA, linesB, changes, opts.contextLen())
	// The final, terminator-less line of a or b (tracked by finalNLA/
	// finalNLB) is the only Line in either slice whose content doesn't
	// end in '\n'; since a HunkLine's Content aliases that Line
	// directly, the formatter derives the no-newline sentinel purely by
	// inspecting content and no separate flag needs threading through
	// assembleHunks.
	_, _ = finalNLA, finalNLB

	p := &Patch{
		Original:    opts.OriginalFilename,
		HasOriginal: true,
		Modified:    opts.ModifiedFilename,
		HasModified: true,
		Hunks:       hunks,
		owned:       owned,
	}
	return p, nil
}
