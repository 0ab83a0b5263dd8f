package annotation

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderHTML writes the rich description as HTML. Mentions become anchors
// pointing at their annotation IDs.
func RenderHTML(rich string, w io.Writer) error {
	if err := goldmark.Convert([]byte(rich), w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// LinkIDs returns the destination of every inline link in the rich
// description, in document order.
func LinkIDs(rich string) []string {
	src := []byte(rich)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var ids []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			ids = append(ids, string(link.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return ids
}
