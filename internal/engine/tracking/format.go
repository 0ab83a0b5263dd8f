package tracking

import "strings"

// DiffStats summarizes a word diff.
type DiffStats struct {
	// Inserted is the number of inserted runes.
	Inserted int

	// Deleted is the number of deleted runes.
	Deleted int

	// Unchanged is the number of runes present in both texts.
	Unchanged int
}

// HasChanges returns true if anything was inserted or deleted.
func (s DiffStats) HasChanges() bool {
	return s.Inserted > 0 || s.Deleted > 0
}

// Stats counts the runes in each kind of segment.
func Stats(segs []Segment) DiffStats {
	var s DiffStats
	for _, seg := range segs {
		switch seg.Type {
		case DiffEqual:
			s.Unchanged += seg.Len()
		case DiffInsert:
			s.Inserted += seg.Len()
		case DiffDelete:
			s.Deleted += seg.Len()
		}
	}
	return s
}

// OldText reconstructs the old text from segments.
func OldText(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Type != DiffInsert {
			sb.WriteString(seg.Value)
		}
	}
	return sb.String()
}

// NewText reconstructs the new text from segments.
func NewText(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Type != DiffDelete {
			sb.WriteString(seg.Value)
		}
	}
	return sb.String()
}

// FormatWordDiff renders segments inline, marking deletions as [-text-] and
// insertions as {+text+}.
func FormatWordDiff(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		switch seg.Type {
		case DiffEqual:
			sb.WriteString(seg.Value)
		case DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(seg.Value)
			sb.WriteString("-]")
		case DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(seg.Value)
			sb.WriteString("+}")
		}
	}
	return sb.String()
}
