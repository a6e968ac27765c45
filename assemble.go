package tridiff

// assembleHunks converts an edit script into a sequence of hunks with
// surrounding context, coalescing runs whose gap is small enough to
// share a hunk. Grounded on the run-merging rule in the teacher's
// Sink.ToUnified: two change runs merge into one hunk whenever the next
// run starts within 2*context lines of the last applied position,
// otherwise the current hunk is closed (trailing context attached) and
// a new one opened (leading context attached).
func assembleHunks(a, b []Line, changes []Change, context int) []*Hunk {
	if len(changes) == 0 {
		return nil
	}
	gap := context * 2

	addEqual := func(h *Hunk, start, end int) int {
		delta := 0
		for i := start; i < end; i++ {
			if i < 0 {
				continue
			}
			if i >= len(a) {
				return delta
			}
			h.Lines = append(h.Lines, HunkLine{Kind: LineContext, Content: a[i]})
			delta++
		}
		return delta
	}

	var hunks []*Hunk
	var h *Hunk
	last := 0
	toLine := 0

	for _, ch := range changes {
		start := ch.P1
		end := ch.P1 + ch.Del
		switch {
		case h != nil && start == last:
			// Contiguous with the previous change; nothing to bridge.
		case h != nil && start <= last+gap:
			addEqual(h, last, start)
			toLine += start - last
		default:
			if h != nil {
				addEqual(h, last, last+context)
				hunks = append(hunks, h)
			}
			toLine += start - last
			h = &Hunk{OldStart: start + 1, NewStart: toLine + 1}
			delta := addEqual(h, start-context, start)
			h.OldStart -= delta
			h.NewStart -= delta
		}
		last = start
		for i := start; i < end; i++ {
			h.Lines = append(h.Lines, HunkLine{Kind: LineDelete, Content: a[i]})
			last++
		}
		insertEnd := ch.P2 + ch.Ins
		for i := ch.P2; i < insertEnd; i++ {
			h.Lines = append(h.Lines, HunkLine{Kind: LineInsert, Content: b[i]})
			toLine++
		}
	}
	if h != nil {
		addEqual(h, last, last+context)
		hunks = append(hunks, h)
	}

	for _, hh := range hunks {
		oldLen, newLen := 0, 0
		for _, l := range hh.Lines {
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
		hh.OldLen = oldLen
		hh.NewLen = newLen
		// A zero-length side has no body line to anchor Start to; per
		// the GNU convention it is one less than the position this hunk
		// was created at, not one more (the assumption the creation code
		// above makes for the common, non-empty case).
		if oldLen == 0 {
			hh.OldStart--
		}
		if newLen == 0 {
			hh.NewStart--
		}
	}
	return hunks
}
