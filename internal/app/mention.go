package app

import (
	"github.com/dshills/textranger/internal/annotation"
	"github.com/dshills/textranger/internal/engine/annotate"
)

// AddMention marks the runes [start, end) of a part's description as a
// mention of the annotation id, which must already be linked in the part,
// and writes the part back.
//
// With trim set, one trailing punctuation mark is left out of the mention.
func (app *Application) AddMention(partPath, id string, start, end int, trim bool) (*annotation.Mention, error) {
	part, doc, err := app.LoadPart(partPath)
	if err != nil {
		return nil, err
	}
	log := app.logger.WithComponent("mention").WithField("id", annotation.DisplayID(id))

	text := doc.Buffer().Slice(annotate.Range{Start: start, End: end})
	switch {
	case trim:
		trimmed, n := annotation.TrimTrailingPunctuation(text)
		if n > 0 {
			log.Debug("trimmed %q to %q", text, trimmed)
			end -= n
		}
	case annotation.HasTrailingPunctuation(text):
		log.Warn("mention %q ends in punctuation, use --trim-punctuation to leave it out", text)
	}

	m, err := doc.AddMention(id, start, end)
	if err != nil {
		return nil, NewOperationError("mention", partPath, err)
	}
	if err := app.SavePart(partPath, part, doc); err != nil {
		return nil, err
	}
	log.Info("added %s %q", m.Range(), m.Text)
	return m, nil
}

// Disable unlinks the mentions of the given annotations in a part. The
// description text is kept; the annotations no longer appear in the rich
// description.
func (app *Application) Disable(partPath string, ids []string) error {
	part, doc, err := app.LoadPart(partPath)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := doc.Disable(id); err != nil {
			return NewOperationError("disable", partPath, err)
		}
	}
	if err := app.SavePart(partPath, part, doc); err != nil {
		return err
	}
	app.logger.WithComponent("disable").Info("unlinked %d annotations in %s", len(ids), partPath)
	return nil
}
