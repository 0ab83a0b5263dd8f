package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/textranger/internal/annotation"
	"github.com/dshills/textranger/internal/config"
	"github.com/dshills/textranger/internal/engine/annotate"
	"github.com/dshills/textranger/internal/engine/tracking"
	"github.com/dshills/textranger/internal/highlight"
	"github.com/dshills/textranger/internal/record"
)

// LoadPart reads a part record and parses its rich description.
func (app *Application) LoadPart(path string) (*record.Part, *annotation.Document, error) {
	part, err := record.Load(path)
	if err != nil {
		return nil, nil, NewOperationError("load", path, err)
	}
	doc, err := annotation.Parse(part.RichDescription, app.DocumentOptions()...)
	if err != nil {
		return nil, nil, NewOperationError("parse", path, err)
	}
	app.logger.WithComponent("document").Debug("loaded %s: %d annotations", path, len(doc.Annotations()))
	return part, doc, nil
}

// SavePart stores the document's plain and rich text in part and writes it
// to path.
func (app *Application) SavePart(path string, part *record.Part, doc *annotation.Document) error {
	rich, err := doc.RichText()
	if err != nil {
		return NewOperationError("render", path, fmt.Errorf("%w: %w", ErrRenderFailed, err))
	}
	part.Description = doc.PlainText()
	part.RichDescription = rich

	if app.config.Output().Pretty {
		err = part.Save(path)
	} else {
		err = part.SaveCompact(path)
	}
	if err != nil {
		return NewOperationError("save", path, err)
	}
	return nil
}

// Render prints the rich description of a part, or its plain text. With
// projection set, the rendered range of every enabled mention follows.
func (app *Application) Render(path string, plain, projection bool) error {
	_, doc, err := app.LoadPart(path)
	if err != nil {
		return err
	}
	if plain {
		_, err = fmt.Fprintln(app.stdout, doc.PlainText())
		return err
	}

	res, err := doc.Buffer().RenderProjection()
	if err != nil {
		return NewOperationError("render", path, fmt.Errorf("%w: %w", ErrRenderFailed, err))
	}
	fmt.Fprintln(app.stdout, res.Text)
	if !projection {
		return nil
	}

	runes := []rune(res.Text)
	for _, p := range res.Projections {
		a := annotationAt(doc, p.Alias.Range())
		name := "?"
		if a != nil {
			name = a.DisplayID
		}
		fmt.Fprintf(app.stdout, "%s\t%s\t%s\n", name, p.Range(), string(runes[p.Start:p.End]))
	}
	return nil
}

// annotationAt returns the annotation with a mention exactly over r.
func annotationAt(doc *annotation.Document, r annotate.Range) *annotation.Annotation {
	for _, a := range doc.Annotations() {
		for _, m := range a.Mentions {
			if m.Range() == r {
				return a
			}
		}
	}
	return nil
}

// Parse lists the annotations of a part's rich description.
//
// Links that did not become annotations, such as links with an empty
// label, are reported as warnings.
func (app *Application) Parse(path string) error {
	part, doc, err := app.LoadPart(path)
	if err != nil {
		return err
	}
	app.checkLinks(path, part.RichDescription, doc)

	fmt.Fprintln(app.stdout, doc.PlainText())
	for _, a := range doc.Annotations() {
		ranges := make([]string, 0, len(a.Mentions))
		for _, m := range a.Mentions {
			ranges = append(ranges, m.Range().String())
		}
		fmt.Fprintf(app.stdout, "%s\t%q\t%s\t%s\n", a.DisplayID, a.Label, a.ID, strings.Join(ranges, " "))
	}
	return nil
}

// checkLinks warns about links in rich that are missing from doc.
func (app *Application) checkLinks(path, rich string, doc *annotation.Document) {
	log := app.logger.WithComponent("parse").WithField("part", path)
	if !annotation.IsMention(rich) {
		log.Info("no annotation links")
		return
	}
	for _, id := range annotation.LinkIDs(rich) {
		if _, ok := doc.Annotation(id); !ok {
			log.Warn("link to %s has no mention text, ignored", id)
		}
	}
}

// Diff prints the word diff between two text files.
func (app *Application) Diff(oldPath, newPath string, stat bool) error {
	oldText, err := os.ReadFile(oldPath)
	if err != nil {
		return NewOperationError("read", oldPath, err)
	}
	newText, err := os.ReadFile(newPath)
	if err != nil {
		return NewOperationError("read", newPath, err)
	}

	segs := tracking.ComputeWordDiff(string(oldText), string(newText), app.DiffOptions())
	if stat {
		s := tracking.Stats(segs)
		_, err = fmt.Fprintf(app.stdout, "+%d -%d =%d\n", s.Inserted, s.Deleted, s.Unchanged)
		return err
	}
	_, err = fmt.Fprint(app.stdout, tracking.FormatWordDiff(segs))
	return err
}

// HTML prints a part's rich description rendered as HTML.
func (app *Application) HTML(path string) error {
	part, _, err := app.LoadPart(path)
	if err != nil {
		return err
	}
	if err := annotation.RenderHTML(part.RichDescription, app.stdout); err != nil {
		return NewOperationError("render html", path, err)
	}
	return nil
}

// Highlight prints a part's plain text with every mention colored, followed
// by a legend. The annotations in disable are shown as disabled, without
// changing the part.
func (app *Application) Highlight(path string, showDisabled bool, disable []string) error {
	_, doc, err := app.LoadPart(path)
	if err != nil {
		return err
	}
	for _, id := range disable {
		if err := doc.Disable(id); err != nil {
			return NewOperationError("highlight", path, err)
		}
	}

	opts := highlight.Options{Color: app.useColor(), ShowDisabled: showDisabled}
	palette := highlight.NewPalette(len(doc.Annotations()))
	fmt.Fprintln(app.stdout, highlight.Highlight(doc, palette, opts))
	fmt.Fprint(app.stdout, highlight.Legend(doc, palette, opts))
	return nil
}

func (app *Application) useColor() bool {
	switch app.config.Output().Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := app.stdout.(*os.File)
	return ok && highlight.ShouldColor(f.Fd())
}
