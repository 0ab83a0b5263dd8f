package annotate

// Replacement is the content an alias substitutes for the text it covers.
//
// The only implementations are Literal and Computed.
type Replacement interface {
	// Replace returns the text to splice in for matched.
	Replace(matched string) string

	isReplacement()
}

// Literal replaces the covered text with a fixed string.
type Literal string

// Replace returns the literal string, ignoring matched.
func (l Literal) Replace(string) string {
	return string(l)
}

func (Literal) isReplacement() {}

// Computed derives the replacement from the covered text.
//
// The function must be pure: it may be called any number of times, once per
// render, and must return the same result for the same input.
type Computed func(matched string) string

// Replace calls the function with matched. A nil Computed returns matched.
func (c Computed) Replace(matched string) string {
	if c == nil {
		return matched
	}
	return c(matched)
}

func (Computed) isReplacement() {}
