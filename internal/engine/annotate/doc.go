// Package annotate provides a positional text-annotation buffer.
//
// A [TextBuffer] owns a source text and an ordered set of [Alias] values. Each
// alias marks a half-open range [Start, End) of the source text and carries a
// [Replacement]. Enabled aliases are substituted into the text when the buffer
// is rendered; disabled aliases are inert but are still kept in place when the
// source text is edited.
//
// # Coordinates
//
// All offsets count Unicode code points (runes) of the buffer's current
// source text, not bytes. A range is valid when 0 <= Start <= End <= length.
//
// # Rendering
//
// Enabled aliases are applied in registration order, not position order.
// Every substitution records index transforms: a shift for everything at or
// after the replaced range, and, when the replacement is shorter than the
// text it replaces, a removed range. Later aliases are projected through all
// transforms recorded so far before they are applied.
//
//	buf := annotate.New("This part produces GFP.")
//	a, _ := buf.CreateAlias(19, 22, annotate.Computed(func(s string) string {
//	    return "[" + s + "](SO:0000316)"
//	}))
//	a.Enable()
//	text, _ := buf.Render() // "This part produces [GFP](SO:0000316)."
//
// [TextBuffer.RenderProjection] additionally reports where each enabled
// alias's content ended up, projected through the complete transform list.
//
// # Editing
//
// [TextBuffer.ChangeText] replaces the source text and re-anchors every
// alias using a word-level diff, so aliases follow their content rather than
// their raw offsets. Aliases whose start falls inside removed text collapse to
// an empty range at the removal point.
//
// # Thread Safety
//
// A TextBuffer is not safe for concurrent use. Callers that share a buffer
// between goroutines must serialize all access to it.
package annotate
