package annotation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var trailingPunctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]$")

// SplitWords splits text on runs of whitespace.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// HasTrailingPunctuation reports whether text ends in a punctuation mark
// that is usually not part of a term, like the period closing a sentence.
func HasTrailingPunctuation(text string) bool {
	return trailingPunctuation.MatchString(text)
}

// TrimTrailingPunctuation removes one trailing punctuation mark and returns
// the trimmed text with the number of runes removed.
func TrimTrailingPunctuation(text string) (string, int) {
	loc := trailingPunctuation.FindStringIndex(text)
	if loc == nil {
		return text, 0
	}
	return text[:loc[0]], utf8.RuneCountInString(text[loc[0]:])
}
