package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/textranger/internal/annotation"
	"github.com/dshills/textranger/internal/engine/annotate"
	"github.com/dshills/textranger/internal/plugin/lua"
	"github.com/dshills/textranger/internal/record"
)

// AnnotateResult summarizes an Annotate run.
type AnnotateResult struct {
	// Added lists the IDs of annotations added to the document.
	Added []string
	// Skipped lists the IDs already present or without occurrences.
	Skipped []string
}

// Annotate applies the term set at termsPath to the part at partPath and
// writes the result to outPath, or back to partPath when outPath is empty.
//
// Entries whose script cannot be loaded are reported after the remaining
// entries have been applied and the part written.
func (app *Application) Annotate(partPath, termsPath, outPath string) (*AnnotateResult, error) {
	part, doc, err := app.LoadPart(partPath)
	if err != nil {
		return nil, err
	}
	set, err := record.LoadTerms(termsPath)
	if err != nil {
		return nil, NewOperationError("load", termsPath, err)
	}
	if len(set.Terms) == 0 {
		return nil, NewOperationError("annotate", termsPath, ErrNoTerms)
	}

	log := app.logger.WithComponent("annotate")
	res := &AnnotateResult{}
	var errs ErrorList

	for _, t := range set.Terms {
		if annotation.HasAnnotation(part.RichDescription, t.ID) {
			log.Info("%s already linked, skipping", t.ID)
			res.Skipped = append(res.Skipped, t.ID)
			continue
		}

		r, err := app.replacementFor(t, filepath.Dir(termsPath))
		if err != nil {
			errs.Add(NewOperationError("load script", t.Script, err))
			continue
		}

		var a *annotation.Annotation
		if r == nil {
			a, err = doc.AddAnnotation(t.ID, t.Label, t.Terms)
		} else {
			a, err = doc.AddAnnotationWith(t.ID, t.Label, t.Terms, r)
		}
		if errors.Is(err, annotation.ErrAnnotationExists) {
			log.Info("%s already annotated, skipping", t.ID)
			res.Skipped = append(res.Skipped, t.ID)
			continue
		}
		if err != nil {
			errs.Add(fmt.Errorf("annotation %s: %w", t.ID, err))
			continue
		}
		if len(a.Mentions) == 0 {
			log.Debug("no occurrences of %v", t.Terms)
			if err := doc.Remove(t.ID); err != nil {
				errs.Add(fmt.Errorf("annotation %s: %w", t.ID, err))
			}
			res.Skipped = append(res.Skipped, t.ID)
			continue
		}
		if t.Enabled {
			if err := doc.Enable(t.ID); err != nil {
				errs.Add(fmt.Errorf("annotation %s: %w", t.ID, err))
				continue
			}
		}
		log.WithFields(map[string]any{"id": a.DisplayID, "enabled": t.Enabled}).
			Info("%d mentions of %q", len(a.Mentions), a.Label)
		res.Added = append(res.Added, t.ID)
	}

	if outPath == "" {
		outPath = partPath
	}
	if err := app.SavePart(outPath, part, doc); err != nil {
		return res, err
	}
	return res, errs.AsError()
}

// replacementFor loads t.Script, resolved against dir, and returns the
// replacement it renders mentions with. It returns nil when t has no script.
func (app *Application) replacementFor(t record.Term, dir string) (annotate.Replacement, error) {
	if t.Script == "" {
		return nil, nil
	}

	path := t.Script
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	log := app.logger.WithComponent("lua").WithField("script", filepath.Base(path))
	script, err := lua.NewScript(string(src),
		lua.WithErrorHandler(func(err error) {
			log.Warn("replace %s: %v", t.ID, err)
		}),
		lua.WithStateOptions(lua.WithOutput(app.opts.LogOutput)),
	)
	if err != nil {
		return nil, err
	}
	app.addScript(script)
	return script.Replacement(t.ID), nil
}
