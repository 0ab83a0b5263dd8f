// Package highlight renders annotated descriptions for the terminal.
//
// Each annotation gets a palette color and its mentions are drawn with that
// color as background. Mentions of disabled annotations are drawn with a
// faded background. Without color, mentions are wrapped in double brackets.
package highlight

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/textranger/internal/annotation"
)

const (
	ansiReset = "\x1b[0m"

	plainOpen  = "[["
	plainClose = "]]"
)

// Options configures highlighting.
type Options struct {
	// Color enables ANSI escape sequences.
	Color bool
	// ShowDisabled highlights mentions whose annotation is disabled.
	ShowDisabled bool
}

// ShouldColor reports whether output to fd should use color. NO_COLOR
// disables color regardless of the terminal.
func ShouldColor(fd uintptr) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(fd))
}

type span struct {
	start, end int
	color      Color
	enabled    bool
}

// Highlight returns the document's plain text with mentions highlighted.
func Highlight(doc *annotation.Document, palette Palette, opts Options) string {
	var spans []span
	for i, a := range doc.Annotations() {
		c := palette.At(i)
		for _, m := range a.Mentions {
			if !m.Enabled() && !opts.ShowDisabled {
				continue
			}
			spans = append(spans, span{start: m.Start(), end: m.End(), color: c, enabled: m.Enabled()})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	runes := []rune(doc.PlainText())
	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		if s.start < pos || s.end > len(runes) {
			continue
		}
		sb.WriteString(string(runes[pos:s.start]))
		open, closing := markers(s, opts.Color)
		sb.WriteString(open)
		sb.WriteString(string(runes[s.start:s.end]))
		sb.WriteString(closing)
		pos = s.end
	}
	sb.WriteString(string(runes[pos:]))
	return sb.String()
}

// Legend lists annotations with their colors, one per line.
func Legend(doc *annotation.Document, palette Palette, opts Options) string {
	var sb strings.Builder
	for i, a := range doc.Annotations() {
		state := "on"
		if !a.Enabled() {
			state = "off"
		}
		swatch := "*"
		if opts.Color {
			c := palette.At(i)
			swatch = background(c) + "  " + ansiReset
		}
		fmt.Fprintf(&sb, "%s %s %q (%d mentions, %s)\n", swatch, a.DisplayID, a.Label, len(a.Mentions), state)
	}
	return sb.String()
}

func markers(s span, color bool) (string, string) {
	if !color {
		return plainOpen, plainClose
	}
	bg := s.color
	if !s.enabled {
		bg = bg.Blend(ColorWhite, 0.6)
	}
	return background(bg) + foreground(bg.Contrast()), ansiReset
}

func background(c Color) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

func foreground(c Color) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}
