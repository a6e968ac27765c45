package tridiff

import (
	"strconv"
	"strings"
)

// Format serializes patch to unified-diff text using opts for filename
// headers, the no-newline sentinel, and blank-context suppression.
// Format never mutates patch.
func Format(patch *Patch, opts Options) string {
	opts = opts.Validate()
	if len(patch.Hunks) == 0 {
		return ""
	}
	var b strings.Builder

	writeHeader := func(prefix string, has bool, name string) {
		b.WriteString(prefix)
		if has {
			b.WriteString(quoteFilename(name))
		} else {
			b.WriteString("/dev/null")
		}
		b.WriteByte('\n')
	}
	writeHeader("--- ", patch.HasOriginal, patch.Original)
	writeHeader("+++ ", patch.HasModified, patch.Modified)

	for _, h := range patch.Hunks {
		writeHunkHeader(&b, h)
		for _, l := range h.Lines {
			writeHunkLine(&b, l, opts)
		}
	}
	return b.String()
}

func writeHunkHeader(b *strings.Builder, h *Hunk) {
	b.WriteString("@@ -")
	writeHunkRange(b, h.OldStart, h.OldLen)
	b.WriteString(" +")
	writeHunkRange(b, h.NewStart, h.NewLen)
	b.WriteString(" @@\n")
}

// writeHunkRange renders one side of a hunk header: the single-number
// form is used only when length is exactly 1 (matching GNU output);
// every other length, including 0, is rendered with an explicit
// "start,length" pair.
func writeHunkRange(b *strings.Builder, start, length int) {
	b.WriteString(strconv.Itoa(start))
	if length != 1 {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(length))
	}
}

func writeHunkLine(b *strings.Builder, l HunkLine, opts Options) {
	var prefix byte
	switch l.Kind {
	case LineDelete:
		prefix = '-'
	case LineInsert:
		prefix = '+'
	default:
		prefix = ' '
	}
	content := l.Content.String()
	if opts.SuppressBlankEmpty && l.Kind == LineContext && content == "\n" {
		b.WriteString(content)
	} else {
		b.WriteByte(prefix)
		b.WriteString(content)
		if content == "" || content[len(content)-1] != '\n' {
			b.WriteByte('\n')
		}
	}
	if !l.Content.hasTerminator() && !opts.MissingNewlineMessage.Suppress {
		b.WriteString(opts.MissingNewlineMessage.text())
		b.WriteByte('\n')
	}
}

// quoteFilename applies C-style quoting when name contains a byte that
// would otherwise make the header ambiguous to parse: whitespace, NUL,
// LF, CR, backslash, double-quote, or any other control byte.
func quoteFilename(name string) string {
	if !needsQuoting(name) {
		return name
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteString("\\x")
				const hex = "0123456789abcdef"
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xf])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch c {
		case ' ', '\t', 0, '\n', '\r', '\\', '"':
			return true
		}
		if c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}
