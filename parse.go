package tridiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// lineCursor walks a string's physical lines (terminator included)
// while tracking each line's starting byte offset, the same
// cursor-over-lines idiom used by the retrieval pack's unified-diff
// parsers (Line(n)/Next()/byte-offset Errorf).
type lineCursor struct {
	raw     []string
	offsets []int
	idx     int
}

func newLineCursor(data string) *lineCursor {
	c := &lineCursor{}
	pos := 0
	for pos < len(data) {
		nl := strings.IndexByte(data[pos:], '\n')
		if nl < 0 {
			c.raw = append(c.raw, data[pos:])
			c.offsets = append(c.offsets, pos)
			break
		}
		end := pos + nl + 1
		c.raw = append(c.raw, data[pos:end])
		c.offsets = append(c.offsets, pos)
		pos = end
	}
	return c
}

func (c *lineCursor) line() string {
	if c.idx >= len(c.raw) {
		return ""
	}
	return c.raw[c.idx]
}

func (c *lineCursor) offset() int {
	if c.idx >= len(c.offsets) {
		if len(c.offsets) == 0 {
			return 0
		}
		last := c.offsets[len(c.offsets)-1]
		return last + len(c.raw[len(c.raw)-1])
	}
	return c.offsets[c.idx]
}

func (c *lineCursor) next() {
	c.idx++
}

func (c *lineCursor) eof() bool {
	return c.idx >= len(c.raw)
}

// Parse parses unified-diff text into a Patch. It tolerates hunks whose
// declared range lengths disagree with their actual body length —
// bodies are always read until a line fails to start with ' ', '-',
// '+', or the no-newline sentinel, never by trusting the declared
// count, which is what bounds the classic pathological-header scan to
// O(body length) regardless of what the header claims. Genuine grammar
// defects (malformed ranges, unterminated quoted names, an unexpected
// line where a hunk header was expected) are collected across the whole
// document via go.uber.org/multierr rather than stopping at the first
// one, so a caller sees every defect in one pass; hunks that parsed
// successfully are still returned.
//
// An optional logger records tolerated-but-notable conditions (a
// mismatched declared hunk length) at Debug level; omitting it, or
// passing nil, uses a discard sink and costs nothing.
func Parse(data string, logger ...*logrus.Logger) (*Patch, error) {
	log := discardLogger
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0]
	}
	c := newLineCursor(data)
	p := &Patch{owned: true}
	var errs error

	if strings.HasPrefix(c.line(), "--- ") {
		name, err := unquoteFilename(c.line()[4:], c.offset()+4)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else {
			p.Original, p.HasOriginal = name, true
		}
		c.next()
		if !strings.HasPrefix(c.line(), "+++ ") {
			errs = multierr.Append(errs, &ParseError{Offset: c.offset(), Msg: "expected '+++ ' header after '--- ' header"})
		} else {
			name, err := unquoteFilename(c.line()[4:], c.offset()+4)
			if err != nil {
				errs = multierr.Append(errs, err)
			} else {
				p.Modified, p.HasModified = name, true
			}
			c.next()
		}
	}

	for !c.eof() {
		if isBlankLine(c.line()) {
			c.next()
			continue
		}
		if !strings.HasPrefix(c.line(), "@@") {
			errs = multierr.Append(errs, &ParseError{Offset: c.offset(), Msg: fmt.Sprintf("expected hunk header '@@', got %q", previewLine(c.line()))})
			resyncToNextHunk(c)
			continue
		}
		hunk, declaredOldLen, declaredNewLen, err := parseHunkHeader(c.line(), c.offset())
		if err != nil {
			errs = multierr.Append(errs, err)
			c.next()
			resyncToNextHunk(c)
			continue
		}
		c.next()
		parseHunkBody(c, hunk)
		if hunk.OldLen != declaredOldLen || hunk.NewLen != declaredNewLen {
			log.WithFields(logrus.Fields{
				"declaredOldLen": declaredOldLen, "actualOldLen": hunk.OldLen,
				"declaredNewLen": declaredNewLen, "actualNewLen": hunk.NewLen,
			}).Debug("tridiff: hunk header length disagrees with body, using recomputed length")
		}
		p.Hunks = append(p.Hunks, hunk)
	}

	return p, errs
}

func isBlankLine(s string) bool {
	return s == "\n" || s == "\r\n" || s == ""
}

func previewLine(s string) string {
	s = strings.TrimRight(s, "\n")
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func resyncToNextHunk(c *lineCursor) {
	for !c.eof() && !strings.HasPrefix(c.line(), "@@") {
		c.next()
	}
}

func parseHunkHeader(line string, offset int) (hunk *Hunk, declaredOldLen, declaredNewLen int, err error) {
	rest := strings.TrimPrefix(line, "@@ -")
	if rest == line {
		return nil, 0, 0, &ParseError{Offset: offset, Msg: "malformed hunk header: missing '@@ -'"}
	}
	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return nil, 0, 0, &ParseError{Offset: offset, Msg: "malformed hunk header: missing old/new separator"}
	}
	oldStr := rest[:sp]
	rest = rest[sp+1:]
	if !strings.HasPrefix(rest, "+") {
		return nil, 0, 0, &ParseError{Offset: offset + 4 + sp + 1, Msg: "malformed hunk header: expected '+'"}
	}
	rest = rest[1:]
	sp2 := strings.IndexByte(rest, ' ')
	if sp2 < 0 {
		return nil, 0, 0, &ParseError{Offset: offset, Msg: "malformed hunk header: missing closing '@@'"}
	}
	newStr := rest[:sp2]
	rest = rest[sp2+1:]
	if !strings.HasPrefix(rest, "@@") {
		return nil, 0, 0, &ParseError{Offset: offset, Msg: "malformed hunk header: expected closing '@@'"}
	}

	oldStart, oldLen, perr := parseRange(oldStr)
	if perr != nil {
		return nil, 0, 0, &ParseError{Offset: offset + 4, Msg: fmt.Sprintf("malformed old range %q: %v", oldStr, perr)}
	}
	newStart, newLen, perr := parseRange(newStr)
	if perr != nil {
		return nil, 0, 0, &ParseError{Offset: offset + 4 + sp + 2, Msg: fmt.Sprintf("malformed new range %q: %v", newStr, perr)}
	}

	return &Hunk{OldStart: oldStart, NewStart: newStart}, oldLen, newLen, nil
}

func parseRange(s string) (start, length int, err error) {
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		start, err = strconv.Atoi(s)
		return start, 1, err
	}
	start, err = strconv.Atoi(s[:comma])
	if err != nil {
		return 0, 0, err
	}
	length, err = strconv.Atoi(s[comma+1:])
	if err != nil {
		return 0, 0, err
	}
	return start, length, nil
}

// parseHunkBody reads body lines until one fails to start with a
// recognized prefix, bounding the read by actual content rather than
// the (possibly wrong, possibly malicious) declared range length.
func parseHunkBody(c *lineCursor, hunk *Hunk) {
	for !c.eof() {
		line := c.line()
		if line == "" {
			break
		}
		switch line[0] {
		case ' ':
			hunk.Lines = append(hunk.Lines, HunkLine{Kind: LineContext, Content: lineFromString(line[1:])})
		case '-':
			hunk.Lines = append(hunk.Lines, HunkLine{Kind: LineDelete, Content: lineFromString(line[1:])})
		case '+':
			hunk.Lines = append(hunk.Lines, HunkLine{Kind: LineInsert, Content: lineFromString(line[1:])})
		case '\\':
			if len(hunk.Lines) > 0 {
				last := &hunk.Lines[len(hunk.Lines)-1]
				last.Content = lineFromString(last.Content.withoutTerminator())
			}
		default:
			oldLen, newLen := countHunkSides(hunk.Lines)
			hunk.OldLen, hunk.NewLen = oldLen, newLen
			return
		}
		c.next()
	}
	oldLen, newLen := countHunkSides(hunk.Lines)
	hunk.OldLen, hunk.NewLen = oldLen, newLen
}

func countHunkSides(lines []HunkLine) (oldLen, newLen int) {
	for _, l := range lines {
		switch l.Kind {
		case LineDelete:
			oldLen++
		case LineInsert:
			newLen++
		default:
			oldLen++
			newLen++
		}
	}
	return
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// unquoteFilename decodes a header filename, which may be C-style
// quoted with the escape set \n \t \r \\ \" \0 \a \b \f \v, \xHH, and
// \NNN (octal) — the superset §4.5 requires the parser to accept even
// though the formatter only emits a subset of it.
func unquoteFilename(s string, baseOffset int) (string, error) {
	trimmed := strings.TrimRight(s, "\n")
	trimmed = strings.TrimRight(trimmed, "\r")
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return trimmed, nil
	}
	var b strings.Builder
	i := 1
	for i < len(trimmed) {
		c := trimmed[i]
		if c == '"' {
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(trimmed) {
			break
		}
		i++
		e := trimmed[i]
		switch {
		case e == 'n':
			b.WriteByte('\n')
		case e == 't':
			b.WriteByte('\t')
		case e == 'r':
			b.WriteByte('\r')
		case e == 'a':
			b.WriteByte('\a')
		case e == 'b':
			b.WriteByte('\b')
		case e == 'f':
			b.WriteByte('\f')
		case e == 'v':
			b.WriteByte('\v')
		case e == '\\':
			b.WriteByte('\\')
		case e == '"':
			b.WriteByte('"')
		case e == 'x':
			if i+2 >= len(trimmed) {
				return "", &ParseError{Offset: baseOffset + i, Msg: "truncated \\x escape in filename"}
			}
			hi, lo := hexVal(trimmed[i+1]), hexVal(trimmed[i+2])
			if hi < 0 || lo < 0 {
				return "", &ParseError{Offset: baseOffset + i, Msg: "bad \\x escape in filename"}
			}
			b.WriteByte(byte(hi<<4 | lo))
			i += 2
		case e >= '0' && e <= '7':
			val := int(e - '0')
			consumed := 0
			for consumed < 2 && i+1 < len(trimmed) && trimmed[i+1] >= '0' && trimmed[i+1] <= '7' {
				i++
				val = val*8 + int(trimmed[i]-'0')
				consumed++
			}
			b.WriteByte(byte(val))
		default:
			return "", &ParseError{Offset: baseOffset + i, Msg: fmt.Sprintf("unknown escape '\\%c' in filename", e)}
		}
		i++
	}
	return "", &ParseError{Offset: baseOffset + len(trimmed), Msg: "unterminated quoted filename"}
}
