// Package record reads and writes the files textranger works on: part
// records holding a description and its rich form, and term sets listing
// annotations to apply.
package record

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// JSON paths of the part fields.
const (
	PathDisplayID       = "displayId"
	PathDescription     = "description"
	PathRichDescription = "richDescription"
)

// Part is a part record. Fields other than the known ones are kept as is.
type Part struct {
	DisplayID       string
	Description     string
	RichDescription string

	raw []byte
}

// Parse reads a part record from JSON.
func Parse(data []byte) (*Part, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrNotObject
	}

	p := &Part{
		DisplayID:       doc.Get(PathDisplayID).String(),
		Description:     doc.Get(PathDescription).String(),
		RichDescription: doc.Get(PathRichDescription).String(),
		raw:             append([]byte(nil), data...),
	}
	if p.RichDescription == "" && !doc.Get(PathRichDescription).Exists() {
		p.RichDescription = p.Description
	}
	return p, nil
}

// Load reads a part record from a file.
func Load(path string) (*Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read part %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse part %s: %w", path, err)
	}
	return p, nil
}

// Marshal returns the record as indented JSON with the known fields updated.
func (p *Part) Marshal() ([]byte, error) {
	return p.encode(true)
}

// MarshalCompact is like Marshal without insignificant whitespace.
func (p *Part) MarshalCompact() ([]byte, error) {
	return p.encode(false)
}

func (p *Part) encode(indent bool) ([]byte, error) {
	out := p.raw
	if len(out) == 0 {
		out = []byte("{}")
	}

	var err error
	fields := []struct {
		path  string
		value string
	}{
		{PathDisplayID, p.DisplayID},
		{PathDescription, p.Description},
		{PathRichDescription, p.RichDescription},
	}
	for _, f := range fields {
		out, err = sjson.SetBytes(out, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	if !indent {
		return pretty.Ugly(out), nil
	}
	return pretty.Pretty(out), nil
}

// Save writes the record to a file as indented JSON.
func (p *Part) Save(path string) error {
	return p.save(path, true)
}

// SaveCompact writes the record to a file as compact JSON.
func (p *Part) SaveCompact(path string) error {
	return p.save(path, false)
}

func (p *Part) save(path string, indent bool) error {
	data, err := p.encode(indent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write part %s: %w", path, err)
	}
	return nil
}

// Get returns an arbitrary field of the record by gjson path.
func (p *Part) Get(path string) gjson.Result {
	return gjson.GetBytes(p.raw, path)
}
