package tridiff

import (
	"bytes"
	"errors"
)

// ErrBinary is returned by the diff entry points (Diff, DiffBytes) when
// either input looks like binary data rather than text, short-circuiting
// the way GNU diff reports "Binary files ... differ" instead of emitting
// a garbled textual patch. Apply and ApplyString do not check their
// input for binary content.
var ErrBinary = errors.New("tridiff: input looks binary")

// binarySniffWindow bounds how much of a buffer LooksBinary inspects,
// mirroring the cheap "sniff the head of the file" heuristic most
// text/binary classifiers use rather than scanning the whole buffer.
const binarySniffWindow = 8000

// LooksBinary reports whether buf contains a NUL byte within its first
// binarySniffWindow bytes, the same heuristic GNU diff and most editors
// use to decide whether to treat a file as binary.
func LooksBinary(buf []byte) bool {
	window := buf
	if len(window) > binarySniffWindow {
		window = window[:binarySniffWindow]
	}
	return bytes.IndexByte(window, 0) >= 0
}

// splitLines splits buf into Lines on LF (0x0A); each returned Line
// includes its terminator. If buf does not end in LF, the final Line
// carries no terminator and the second result is false. Empty input
// yields a nil slice and true. CR bytes are never stripped: CRLF input
// produces Lines ending in CRLF, exactly as spec'd — this is the only
// normalization layer in the package, and it performs none beyond
// splitting.
func splitLines(buf []byte) (lines []Line, finalNewline bool) {
	if len(buf) == 0 {
		return nil, true
	}
	start := 0
	for {
		idx := bytes.IndexByte(buf[start:], '\n')
		if idx < 0 {
			lines = append(lines, lineFromBytes(buf[start:]))
			return lines, false
		}
		end := start + idx + 1
		lines = append(lines, lineFromBytes(buf[start:end]))
		start = end
		if start == len(buf) {
			return lines, true
		}
	}
}

func splitLinesString(s string) (lines []Line, finalNewline bool) {
	if len(s) == 0 {
		return nil, true
	}
	start := 0
	for {
		idx := indexByteString(s[start:], '\n')
		if idx < 0 {
			lines = append(lines, lineFromString(s[start:]))
			return lines, false
		}
		end := start + idx + 1
		lines = append(lines, lineFromString(s[start:end]))
		start = end
		if start == len(s) {
			return lines, true
		}
	}
}

func indexByteString(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
