package app

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/dshills/textranger/internal/annotation"
	"github.com/dshills/textranger/internal/record"
	"github.com/dshills/textranger/internal/watcher"
)

// Watch keeps the part at partPath in step with the plain text file at
// textPath until ctx is done.
//
// When textPath does not exist it is created from the part's description.
// Each saved version of the text re-anchors the part's annotations and the
// part is rewritten; annotations whose every mention was deleted are dropped.
func (app *Application) Watch(ctx context.Context, partPath, textPath string) error {
	part, doc, err := app.LoadPart(partPath)
	if err != nil {
		return err
	}
	log := app.logger.WithComponent("watch").WithField("text", textPath)

	current, err := os.ReadFile(textPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(textPath, []byte(doc.PlainText()), 0o644); err != nil {
			return NewOperationError("create", textPath, err)
		}
		log.Info("created from %s", partPath)
	case err != nil:
		return NewOperationError("read", textPath, err)
	case !bytes.Equal(current, []byte(doc.PlainText())):
		if err := app.applyEdit(partPath, part, doc, string(current)); err != nil {
			return err
		}
	}

	w, err := watcher.NewFileWatcher(textPath, watcher.WithDebounce(app.config.Watch().Debounce))
	if err != nil {
		return NewOperationError("watch", textPath, err)
	}
	defer w.Close()

	log.Info("watching for edits")
	for {
		select {
		case <-ctx.Done():
			s := app.metrics.Snapshot()
			log.Info("stopped after %d edits (avg %v, %d annotations dropped)", s.EditCount, s.AvgEdit(), s.Dropped)
			return nil
		case ch, ok := <-w.Changes():
			if !ok {
				return nil
			}
			if err := app.applyEdit(partPath, part, doc, string(ch.Content)); err != nil {
				log.Error("%v", err)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("watcher: %v", err)
		}
	}
}

// applyEdit re-anchors doc to text and saves the part.
func (app *Application) applyEdit(partPath string, part *record.Part, doc *annotation.Document, text string) error {
	if text == doc.PlainText() {
		return nil
	}
	timer := StartTimer()
	removed := doc.Edit(text)
	app.metrics.RecordEdit(timer.Elapsed(), len(removed))

	if err := app.SavePart(partPath, part, doc); err != nil {
		app.metrics.RecordSaveFailure()
		return err
	}

	log := app.logger.WithComponent("watch")
	for _, id := range removed {
		log.Info("dropped annotation %s", annotation.DisplayID(id))
	}
	log.WithField("annotations", len(doc.Annotations())).Info("updated %s", partPath)
	return nil
}
