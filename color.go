package tridiff

import (
	"strings"

	"github.com/tridiff/tridiff/ansi"
)

// FormatColor is Format with ANSI styling applied per style, classifying
// each emitted line the way §4.8 requires: file headers as Header, hunk
// headers as HunkHeader, and each body line as Context/Delete/Insert per
// its kind. A style with no colors configured for a role renders that
// role's lines unchanged, so FormatColor(patch, opts, ansi.Config{}) is
// byte-identical to Format(patch, opts).
func FormatColor(patch *Patch, opts Options, style ansi.Config) string {
	opts = opts.Validate()
	if len(patch.Hunks) == 0 {
		return ""
	}
	var b strings.Builder

	writeHeader := func(prefix string, has bool, name string) {
		line := prefix
		if has {
			line += quoteFilename(name)
		} else {
			line += "/dev/null"
		}
		b.WriteString(style.Style(ansi.Header, line))
		b.WriteByte('\n')
	}
	writeHeader("--- ", patch.HasOriginal, patch.Original)
	writeHeader("+++ ", patch.HasModified, patch.Modified)

	for _, h := range patch.Hunks {
		var hb strings.Builder
		writeHunkHeader(&hb, h)
		b.WriteString(style.Style(ansi.HunkHeader, strings.TrimSuffix(hb.String(), "\n")))
		b.WriteByte('\n')
		for _, l := range h.Lines {
			var lb strings.Builder
			writeHunkLine(&lb, l, opts)
			b.WriteString(styleHunkLineText(style, l.Kind, lb.String()))
		}
	}
	return b.String()
}

// styleHunkLineText styles one already-rendered hunk body line, which may
// be two physical lines when a no-newline sentinel is appended (see
// writeHunkLine). Only the content line is wrapped in the Delete/Insert/
// Context span; a following sentinel line renders unstyled, and the
// trailing terminator bytes of whichever line is styled stay outside the
// span either way.
func styleHunkLineText(style ansi.Config, kind HunkLineKind, text string) string {
	role := ansi.Context
	switch kind {
	case LineDelete:
		role = ansi.Delete
	case LineInsert:
		role = ansi.Insert
	}
	content := text
	var sentinel string
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		content = text[:nl+1]
		sentinel = text[nl+1:]
	}
	trimmed := strings.TrimRight(content, "\n")
	trailer := content[len(trimmed):]
	return style.Style(role, trimmed) + trailer + sentinel
}
