package annotate

import "github.com/dshills/textranger/internal/engine/tracking"

// ChangeText replaces the source text with newText and re-anchors every
// registered alias, enabled or not.
//
// Old and new text are diffed at word granularity. Walking the diff, pos is
// the offset in the coordinate space the aliases use at that point:
//
//   - Inserted text of length n at pos shifts aliases starting after pos by
//     n. An alias starting exactly at pos absorbs the insertion: it keeps
//     its start and its end moves to pos+n, the end of the inserted text.
//     An alias that starts before pos and ends after it grows by n.
//   - Removed text [pos, pos+n) shifts aliases starting at or after pos+n
//     left by n. Aliases starting inside the removed text collapse to an
//     empty range at pos. Aliases starting before pos lose the part of their
//     tail that was removed.
//
// ChangeText never fails.
func (b *TextBuffer) ChangeText(newText string) {
	if newText == b.text {
		return
	}

	pos := 0
	for _, seg := range tracking.ComputeWordDiff(b.text, newText, b.diffOpts) {
		n := seg.Len()
		switch seg.Type {
		case tracking.DiffEqual:
			pos += n
		case tracking.DiffInsert:
			b.anchorInsert(pos, n)
			pos += n
		case tracking.DiffDelete:
			b.anchorDelete(pos, pos+n)
		}
	}

	b.text = newText
}

// anchorInsert adjusts aliases for n runes inserted at at.
func (b *TextBuffer) anchorInsert(at, n int) {
	for _, a := range b.aliases {
		switch {
		case a.start > at:
			a.start += n
			a.end += n
		case a.start == at:
			a.end = at + n
		case a.end > at:
			a.end += n
		}
	}
}

// anchorDelete adjusts aliases for the removal of [start, end).
func (b *TextBuffer) anchorDelete(start, end int) {
	n := end - start
	for _, a := range b.aliases {
		switch {
		case a.start >= end:
			a.start -= n
			a.end -= n
		case a.start >= start:
			a.start = start
			a.end = start
		case a.end > start:
			if a.end >= end {
				a.end -= n
			} else {
				a.end = start
			}
		}
	}
}
