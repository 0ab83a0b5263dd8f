package annotation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// anyLink matches a link with any non-empty destination.
var anyLink = LinkPattern("")

// LinkPattern returns a pattern matching annotation links to id. Submatch 1
// is the label and submatch 2 the destination. An empty id matches any
// destination.
func LinkPattern(id string) *regexp.Regexp {
	dest := ".+?"
	if id != "" {
		dest = regexp.QuoteMeta(id)
	}
	return regexp.MustCompile(`\[([^\]]*?)\]\((` + dest + `)\)`)
}

// FormatLink returns the rich-text form of a mention.
func FormatLink(label, id string) string {
	return "[" + label + "](" + id + ")"
}

// IsMention reports whether text contains an annotation link.
func IsMention(text string) bool {
	return anyLink.MatchString(text)
}

// HasAnnotation reports whether the rich description links to id.
func HasAnnotation(rich, id string) bool {
	return LinkPattern(id).MatchString(rich)
}

// DisplayID returns the last path segment of an annotation ID.
func DisplayID(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// link is a link found in a rich description, in rune offsets.
type link struct {
	start int
	end   int
	label string
	id    string
	text  string
}

// findLinks returns every link in rich with a non-empty label.
func findLinks(rich string) []link {
	var links []link
	for _, m := range anyLink.FindAllStringSubmatchIndex(rich, -1) {
		label := rich[m[2]:m[3]]
		if label == "" {
			continue
		}
		links = append(links, link{
			start: utf8.RuneCountInString(rich[:m[0]]),
			end:   utf8.RuneCountInString(rich[:m[1]]),
			label: label,
			id:    rich[m[4]:m[5]],
			text:  rich[m[0]:m[1]],
		})
	}
	return links
}
