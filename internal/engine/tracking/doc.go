// Package tracking computes word-level diffs between two versions of a text.
//
// The diff drives alias re-anchoring: it tells a buffer which runs of text
// survived an edit, which were inserted and which were removed.
//
// # Tokens
//
// Text is split with Unicode word segmentation (UAX #29). Words, punctuation
// and runs of whitespace are separate tokens:
//
//	tracking.Tokenize("hello,  world") // ["hello" "," "  " "world"]
//
// # Diffing
//
//	segs := tracking.ComputeWordDiff("hello world", "hello there world",
//	    tracking.DefaultDiffOptions())
//	// equal "hello", insert " there", equal " world"
//
// Token sequences are compared with the Myers algorithm. Inputs that exceed
// the token or memory limits in [DiffOptions] use a linear heuristic matcher
// instead.
//
// Segments satisfy two reconstruction properties: concatenating the Equal
// and Delete values yields the old text, and concatenating the Equal and
// Insert values yields the new text. Within a changed region deletions come
// before insertions, and a pure insertion is slid to the earliest position
// that produces the same texts.
package tracking
