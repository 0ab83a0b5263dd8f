package annotation

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/dshills/textranger/internal/engine/annotate"
	"github.com/dshills/textranger/internal/engine/tracking"
)

// Mention is one occurrence of an annotated term in the plain text.
type Mention struct {
	// ID uniquely identifies the mention.
	ID string
	// Text is the mentioned text as of the last parse or edit.
	Text string

	alias *annotate.Alias
}

// Start returns the mention start in plain-text runes.
func (m *Mention) Start() int { return m.alias.Start() }

// End returns the mention end in plain-text runes.
func (m *Mention) End() int { return m.alias.End() }

// Range returns the mention range in plain-text runes.
func (m *Mention) Range() annotate.Range { return m.alias.Range() }

// Enabled reports whether the mention renders as a link.
func (m *Mention) Enabled() bool { return m.alias.Enabled() }

// Annotation is an ontology term and its mentions in the plain text.
type Annotation struct {
	ID        string
	DisplayID string
	Label     string
	Mentions  []*Mention

	replacement annotate.Replacement
}

// Enabled reports whether any mention of the annotation renders as a link.
func (a *Annotation) Enabled() bool {
	for _, m := range a.Mentions {
		if m.Enabled() {
			return true
		}
	}
	return false
}

func (a *Annotation) setEnabled(enabled bool) {
	for _, m := range a.Mentions {
		if enabled {
			m.alias.Enable()
		} else {
			m.alias.Disable()
		}
	}
}

// Document is a plain-text description with its annotations.
type Document struct {
	buffer      *annotate.TextBuffer
	annotations []*Annotation

	lang       language.Tag
	ignoreCase bool
	diffOpts   tracking.DiffOptions
}

// Option configures a Document.
type Option func(*Document)

// WithLanguage sets the language used to match terms.
func WithLanguage(tag language.Tag) Option {
	return func(d *Document) {
		d.lang = tag
	}
}

// WithIgnoreCase sets whether term matching ignores case.
func WithIgnoreCase(ignore bool) Option {
	return func(d *Document) {
		d.ignoreCase = ignore
	}
}

// WithDiffOptions sets the diff options used when the text is edited.
func WithDiffOptions(opts tracking.DiffOptions) Option {
	return func(d *Document) {
		d.diffOpts = opts
	}
}

// NewDocument creates a document over plain text with no annotations.
func NewDocument(plain string, opts ...Option) *Document {
	d := &Document{
		lang:       language.English,
		ignoreCase: true,
		diffOpts:   tracking.DefaultDiffOptions(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.buffer = annotate.New(plain, annotate.WithDiffOptions(d.diffOpts))
	return d
}

// Parse builds a document from a rich description.
//
// Links are replaced by their labels to produce the plain text, and every
// link becomes an enabled mention. Links sharing a destination belong to one
// annotation, ordered by first appearance.
func Parse(rich string, opts ...Option) (*Document, error) {
	links := findLinks(rich)

	reverse := annotate.New(rich)
	for _, l := range links {
		a, err := reverse.CreateAlias(l.start, l.end, annotate.Literal(l.label))
		if err != nil {
			return nil, fmt.Errorf("alias link %q: %w", l.text, err)
		}
		a.Enable()
	}
	res, err := reverse.RenderProjection()
	if err != nil {
		return nil, fmt.Errorf("strip links: %w", err)
	}

	d := NewDocument(res.Text, opts...)
	byID := make(map[string]*Annotation)
	for i, p := range res.Projections {
		l := links[i]
		anno, ok := byID[l.id]
		if !ok {
			anno = newAnnotation(l.id, l.label, linkTo(l.id))
			byID[l.id] = anno
			d.annotations = append(d.annotations, anno)
		}

		m, err := d.newMention(anno, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		m.alias.Enable()
		anno.Mentions = append(anno.Mentions, m)
	}
	return d, nil
}

// PlainText returns the text with no links.
func (d *Document) PlainText() string {
	return d.buffer.Text()
}

// RichText renders the plain text with every enabled mention as a link.
func (d *Document) RichText() (string, error) {
	return d.buffer.Render()
}

// Buffer returns the text buffer holding the mention aliases.
func (d *Document) Buffer() *annotate.TextBuffer {
	return d.buffer
}

// Annotations returns the annotations in order of addition.
func (d *Document) Annotations() []*Annotation {
	out := make([]*Annotation, len(d.annotations))
	copy(out, d.annotations)
	return out
}

// Annotation returns the annotation with the given ID.
func (d *Document) Annotation(id string) (*Annotation, bool) {
	for _, a := range d.annotations {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Enable renders every mention of the annotation as a link.
func (d *Document) Enable(id string) error {
	a, ok := d.Annotation(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAnnotation, id)
	}
	a.setEnabled(true)
	return nil
}

// Disable renders every mention of the annotation as plain text.
func (d *Document) Disable(id string) error {
	a, ok := d.Annotation(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAnnotation, id)
	}
	a.setEnabled(false)
	return nil
}

// AddMention marks [start, end) of the plain text as a mention of an
// existing annotation and enables it.
//
// Returns an *OverlapError when the range overlaps a mention of any
// annotation.
func (d *Document) AddMention(id string, start, end int) (*Mention, error) {
	a, ok := d.Annotation(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAnnotation, id)
	}
	if start < 0 || start >= end || end > d.buffer.RuneLen() {
		return nil, fmt.Errorf("%w: [%d:%d)", ErrOutOfRange, start, end)
	}
	if err := d.checkOverlap(annotate.Range{Start: start, End: end}); err != nil {
		return nil, err
	}

	m, err := d.newMention(a, start, end)
	if err != nil {
		return nil, err
	}
	m.alias.Enable()
	a.Mentions = append(a.Mentions, m)
	return m, nil
}

// Remove drops an annotation. Its mentions stop rendering as links.
func (d *Document) Remove(id string) error {
	for i, a := range d.annotations {
		if a.ID != id {
			continue
		}
		a.setEnabled(false)
		d.annotations = append(d.annotations[:i], d.annotations[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownAnnotation, id)
}

// Edit replaces the plain text and re-anchors every mention.
//
// Mentions whose text was deleted are dropped, and annotations left with
// no mention are removed. Edit returns the IDs of removed annotations.
func (d *Document) Edit(newText string) []string {
	d.buffer.ChangeText(newText)

	var removed []string
	kept := d.annotations[:0]
	for _, a := range d.annotations {
		mentions := a.Mentions[:0]
		for _, m := range a.Mentions {
			if m.Range().IsEmpty() {
				m.alias.Disable()
				continue
			}
			m.Text = d.buffer.Slice(m.Range())
			mentions = append(mentions, m)
		}
		a.Mentions = mentions

		if len(a.Mentions) == 0 {
			removed = append(removed, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(d.annotations); i++ {
		d.annotations[i] = nil
	}
	d.annotations = kept
	return removed
}

func newAnnotation(id, label string, r annotate.Replacement) *Annotation {
	return &Annotation{ID: id, DisplayID: DisplayID(id), Label: label, replacement: r}
}

// newMention registers a disabled mention alias of a over [start, end).
func (d *Document) newMention(a *Annotation, start, end int) (*Mention, error) {
	alias, err := d.buffer.CreateAlias(start, end, a.replacement)
	if err != nil {
		return nil, fmt.Errorf("mention of %s: %w", a.ID, err)
	}
	return &Mention{
		ID:    uuid.NewString(),
		Text:  d.buffer.Slice(alias.Range()),
		alias: alias,
	}, nil
}

func (d *Document) checkOverlap(r annotate.Range) error {
	for _, a := range d.annotations {
		for _, m := range a.Mentions {
			if m.Range().Overlaps(r) {
				return &OverlapError{AnnotationID: a.ID, Mention: m}
			}
		}
	}
	return nil
}

// linkTo formats the mentioned text as a link to id.
func linkTo(id string) annotate.Computed {
	return func(label string) string {
		return FormatLink(label, id)
	}
}
