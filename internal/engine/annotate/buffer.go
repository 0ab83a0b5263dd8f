package annotate

import (
	"unicode/utf8"

	"github.com/dshills/textranger/internal/engine/tracking"
)

// TextBuffer owns a source text and the aliases registered over it.
type TextBuffer struct {
	text    string
	aliases []*Alias

	diffOpts tracking.DiffOptions
}

// Option is a functional option for configuring a TextBuffer.
type Option func(*TextBuffer)

// WithDiffOptions sets the options used by ChangeText to diff old and new text.
func WithDiffOptions(opts tracking.DiffOptions) Option {
	return func(b *TextBuffer) {
		b.diffOpts = opts
	}
}

// New creates a buffer over text with no aliases.
func New(text string, opts ...Option) *TextBuffer {
	b := &TextBuffer{
		text:     text,
		diffOpts: tracking.DefaultDiffOptions(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Text returns the current source text.
func (b *TextBuffer) Text() string {
	return b.text
}

// RuneLen returns the length of the source text in runes.
func (b *TextBuffer) RuneLen() int {
	return utf8.RuneCountInString(b.text)
}

// Slice returns the source text covered by r, clamped to the text bounds.
func (b *TextBuffer) Slice(r Range) string {
	runes := []rune(b.text)
	start := clamp(r.Start, 0, len(runes))
	end := clamp(r.End, start, len(runes))
	return string(runes[start:end])
}

// Len returns the number of registered aliases.
func (b *TextBuffer) Len() int {
	return len(b.aliases)
}

// Aliases returns the registered aliases in registration order.
// The returned slice is a copy; the aliases themselves are shared.
func (b *TextBuffer) Aliases() []*Alias {
	out := make([]*Alias, len(b.aliases))
	copy(out, b.aliases)
	return out
}

// CreateAlias registers a disabled alias over [start, end).
//
// End is not checked against the current text length so ranges can be
// registered before the text is final. Returns a *RangeError wrapping
// ErrInvalidRange when start > end or start is negative.
func (b *TextBuffer) CreateAlias(start, end int, r Replacement) (*Alias, error) {
	if start > end || start < 0 {
		return nil, &RangeError{Start: start, End: end}
	}
	if r == nil {
		r = Literal("")
	}

	a := &Alias{
		start:       start,
		end:         end,
		replacement: r,
	}
	a.register(b)
	return a, nil
}

// contains reports whether a is in the alias list.
func (b *TextBuffer) contains(a *Alias) bool {
	for _, existing := range b.aliases {
		if existing == a {
			return true
		}
	}
	return false
}

// enabled returns the enabled aliases in registration order.
func (b *TextBuffer) enabled() []*Alias {
	var out []*Alias
	for _, a := range b.aliases {
		if a.enabled {
			out = append(out, a)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
