package annotate

import "unicode/utf8"

// Projection reports where an enabled alias's content lives in rendered text.
type Projection struct {
	Alias *Alias
	Start int
	End   int
}

// Range returns the projected range.
func (p Projection) Range() Range {
	return Range{Start: p.Start, End: p.End}
}

// Result is the output of RenderProjection.
type Result struct {
	Text        string
	Projections []Projection
}

// Render returns the source text with every enabled alias substituted.
//
// Render does not modify the buffer. It fails with an *IndexRemovedError when
// an alias projects into text removed by an earlier substitution.
func (b *TextBuffer) Render() (string, error) {
	text, _, err := b.render()
	return text, err
}

// RenderProjection renders like Render and also reports, for every enabled
// alias in registration order, its range in the rendered text.
//
// Projected ranges go through the complete transform list, so they account
// for substitutions applied after the alias itself.
func (b *TextBuffer) RenderProjection() (Result, error) {
	text, proj, err := b.render()
	if err != nil {
		return Result{}, err
	}

	enabled := b.enabled()
	res := Result{
		Text:        text,
		Projections: make([]Projection, 0, len(enabled)),
	}
	for _, a := range enabled {
		r, err := proj.projectRange(a.Range())
		if err != nil {
			return Result{}, err
		}
		res.Projections = append(res.Projections, Projection{Alias: a, Start: r.Start, End: r.End})
	}
	return res, nil
}

// render applies enabled aliases in registration order and returns the
// rendered text with the transforms that produced it.
func (b *TextBuffer) render() (string, projection, error) {
	enabled := b.enabled()
	if len(enabled) == 0 {
		return b.text, nil, nil
	}

	out := []rune(b.text)
	var proj projection

	for _, a := range enabled {
		r, err := proj.projectRange(a.Range())
		if err != nil {
			return "", nil, err
		}
		if r.Start > r.End {
			return "", nil, &RangeError{Start: r.Start, End: r.End}
		}

		// Ranges registered past the end of the text cover what exists.
		start := clamp(r.Start, 0, len(out))
		end := clamp(r.End, start, len(out))

		replacement := a.replacement.Replace(string(out[start:end]))
		newLen := utf8.RuneCountInString(replacement)

		proj = proj.record(start, end, newLen)
		out = splice(out, start, end, replacement)
	}

	return string(out), proj, nil
}

// splice replaces runes[start:end] with s.
func splice(runes []rune, start, end int, s string) []rune {
	repl := []rune(s)
	out := make([]rune, 0, len(runes)-(end-start)+len(repl))
	out = append(out, runes[:start]...)
	out = append(out, repl...)
	out = append(out, runes[end:]...)
	return out
}
