package tracking

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Tokenize splits s into word, punctuation and whitespace tokens.
// Adjacent whitespace tokens are merged, so line breaks and the spaces
// around them form one token.
func Tokenize(s string) []string {
	var tokens []string
	state := -1
	rest := s
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if n := len(tokens); n > 0 && isSpace(word) && isSpace(tokens[n-1]) {
			tokens[n-1] += word
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isSpace reports whether s is non-empty and all whitespace.
func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
