package annotate

import "fmt"

// Range is a half-open range of rune offsets: [Start, End).
type Range struct {
	Start int
	End   int
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Overlaps returns true if the two ranges share at least one offset.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Alias is a registered substitution over a range of a TextBuffer's text.
//
// Aliases are created by TextBuffer.CreateAlias and start disabled. The
// owning buffer updates Start and End when its text changes.
type Alias struct {
	buffer      *TextBuffer // non-owning
	start       int
	end         int
	replacement Replacement
	enabled     bool
}

// Start returns the start offset in buffer coordinates.
func (a *Alias) Start() int { return a.start }

// End returns the end offset in buffer coordinates.
func (a *Alias) End() int { return a.end }

// Range returns the alias range in buffer coordinates.
func (a *Alias) Range() Range {
	return Range{Start: a.start, End: a.end}
}

// Replacement returns the alias replacement.
func (a *Alias) Replacement() Replacement { return a.replacement }

// Buffer returns the buffer the alias is registered on.
func (a *Alias) Buffer() *TextBuffer { return a.buffer }

// Enabled reports whether the alias takes part in rendering.
func (a *Alias) Enabled() bool { return a.enabled }

// Enable makes the alias take part in rendering.
func (a *Alias) Enable() { a.enabled = true }

// Disable removes the alias from rendering. Its range is still maintained.
func (a *Alias) Disable() { a.enabled = false }

// String returns a human-readable representation of the alias.
func (a *Alias) String() string {
	state := "disabled"
	if a.enabled {
		state = "enabled"
	}
	return fmt.Sprintf("alias%s(%s)", a.Range(), state)
}

// register attaches the alias to b exactly once.
func (a *Alias) register(b *TextBuffer) {
	if a.buffer == b && b.contains(a) {
		return
	}
	a.buffer = b
	b.aliases = append(b.aliases, a)
}
