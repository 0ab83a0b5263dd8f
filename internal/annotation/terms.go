package annotation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/search"

	"github.com/dshills/textranger/internal/engine/annotate"
)

// AddAnnotation adds an annotation whose mentions are the whole-word
// occurrences of terms in the plain text.
//
// Mentions start disabled; call Enable to render them as links. Occurrences
// overlapping an existing mention are skipped. An empty label defaults to
// the first term.
func (d *Document) AddAnnotation(id, label string, terms []string) (*Annotation, error) {
	return d.AddAnnotationWith(id, label, terms, linkTo(id))
}

// AddAnnotationWith is like AddAnnotation but renders mentions with r
// instead of a link to id.
func (d *Document) AddAnnotationWith(id, label string, terms []string, r annotate.Replacement) (*Annotation, error) {
	if _, ok := d.Annotation(id); ok {
		return nil, fmt.Errorf("%w: %s", ErrAnnotationExists, id)
	}
	if label == "" && len(terms) > 0 {
		label = terms[0]
	}

	anno := newAnnotation(id, label, r)
	d.annotations = append(d.annotations, anno)

	for _, found := range d.FindTerms(terms) {
		if d.checkOverlap(found) != nil {
			continue
		}
		m, err := d.newMention(anno, found.Start, found.End)
		if err != nil {
			return nil, err
		}
		anno.Mentions = append(anno.Mentions, m)
	}
	return anno, nil
}

// FindTerms returns the rune ranges of whole-word occurrences of terms in
// the plain text, in term order and then text order. Whitespace inside a
// term matches a single space.
func (d *Document) FindTerms(terms []string) []annotate.Range {
	var opts []search.Option
	if d.ignoreCase {
		opts = append(opts, search.IgnoreCase)
	}
	matcher := search.New(d.lang, opts...)

	text := d.buffer.Text()
	var found []annotate.Range
	for _, term := range terms {
		term = strings.Join(SplitWords(term), " ")
		if term == "" {
			continue
		}
		pattern := matcher.CompileString(term)
		offset := 0
		for offset < len(text) {
			start, end := pattern.IndexString(text[offset:])
			if start < 0 {
				break
			}
			start, end = start+offset, end+offset
			if isWordBoundary(text, start, end) {
				found = append(found, annotate.Range{
					Start: utf8.RuneCountInString(text[:start]),
					End:   utf8.RuneCountInString(text[:end]),
				})
			}
			_, size := utf8.DecodeRuneInString(text[start:])
			offset = start + size
		}
	}
	return found
}

// isWordBoundary reports whether text[start:end] is not part of a longer word.
func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
