package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/textranger/internal/annotation"
	"github.com/dshills/textranger/internal/record"
)

const (
	samplePlain = "Tagged with GFP in E. coli. More gfp."
	samplePart  = `{"displayId":"BBa_E0040","description":"Tagged with GFP in E. coli. More gfp.","richDescription":"Tagged with [GFP](gfpID) in [E. coli](coliID). More [gfp](gfpID).","version":2}`
)

// syncBuffer is a bytes.Buffer safe for the watch goroutine to log into.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestApp(t *testing.T, logOut io.Writer) (*Application, *bytes.Buffer) {
	t.Helper()
	if logOut == nil {
		logOut = io.Discard
	}
	var out bytes.Buffer
	app, err := New(context.Background(), Options{
		Stdout:    &out,
		LogOutput: logOut,
		Color:     "never",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewInvalidLogLevel(t *testing.T) {
	_, err := New(context.Background(), Options{LogLevel: "loud", LogOutput: io.Discard})
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("New() error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestNewConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "textranger.toml", `
[annotation]
ignoreCase = false

[diff]
maxTokens = 42
`)

	app, err := New(context.Background(), Options{ConfigPath: cfgPath, LogLevel: "debug", LogOutput: io.Discard})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := app.DiffOptions().MaxTokens; got != 42 {
		t.Errorf("DiffOptions().MaxTokens = %d, want 42", got)
	}
	if app.Config().Annotation().IgnoreCase {
		t.Error("annotation.ignoreCase should come from the file")
	}
	if !app.Logger().Enabled(LogLevelDebug) {
		t.Error("--log-level should override logging.level")
	}
	if len(app.DocumentOptions()) != 3 {
		t.Errorf("DocumentOptions() has %d options", len(app.DocumentOptions()))
	}
}

func TestNewBadConfigFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", "[diff\n")
	_, err := New(context.Background(), Options{ConfigPath: path, LogOutput: io.Discard})

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "load" {
		t.Errorf("New() error = %v, want load OperationError", err)
	}
}

func TestRender(t *testing.T) {
	path := writeFile(t, t.TempDir(), "part.json", samplePart)

	tests := []struct {
		name       string
		plain      bool
		projection bool
		want       []string
	}{
		{"plain", true, false, []string{samplePlain + "\n"}},
		{"rich", false, false, []string{"Tagged with [GFP](gfpID) in [E. coli](coliID). More [gfp](gfpID).\n"}},
		{"projection", false, true, []string{
			"gfpID\t[12:24)\t[GFP](gfpID)\n",
			"coliID\t[28:45)\t[E. coli](coliID)\n",
			"gfpID\t[52:64)\t[gfp](gfpID)\n",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, nil)
			if err := app.Render(path, tt.plain, tt.projection); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestRenderMissingPart(t *testing.T) {
	app, _ := newTestApp(t, nil)
	err := app.Render(filepath.Join(t.TempDir(), "none.json"), false, false)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Render() error = %v, want fs.ErrNotExist", err)
	}
}

func TestParse(t *testing.T) {
	path := writeFile(t, t.TempDir(), "part.json", samplePart)
	app, out := newTestApp(t, nil)

	if err := app.Parse(path); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := samplePlain + "\n" +
		"gfpID\t\"GFP\"\tgfpID\t[12:15) [33:36)\n" +
		"coliID\t\"E. coli\"\tcoliID\t[19:26)\n"
	if out.String() != want {
		t.Errorf("Parse() output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt", "the quick fox")
	newPath := writeFile(t, dir, "new.txt", "the slow fox")

	app, out := newTestApp(t, nil)
	if err := app.Diff(oldPath, newPath, false); err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if got := out.String(); got != "the [-quick-]{+slow+} fox" {
		t.Errorf("Diff() = %q", got)
	}

	out.Reset()
	if err := app.Diff(oldPath, newPath, true); err != nil {
		t.Fatalf("Diff(stat) error = %v", err)
	}
	if got := out.String(); got != "+4 -5 =8\n" {
		t.Errorf("Diff(stat) = %q", got)
	}
}

func TestHTML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "part.json", samplePart)
	app, out := newTestApp(t, nil)

	if err := app.HTML(path); err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if !strings.Contains(out.String(), `<a href="coliID">E. coli</a>`) {
		t.Errorf("HTML() = %s", out.String())
	}
}

func TestHighlightWithoutColor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "part.json", samplePart)
	app, out := newTestApp(t, nil)

	if err := app.Highlight(path, false, nil); err != nil {
		t.Fatalf("Highlight() error = %v", err)
	}
	want := "Tagged with [[GFP]] in [[E. coli]]. More [[gfp]].\n" +
		"* gfpID \"GFP\" (2 mentions, on)\n" +
		"* coliID \"E. coli\" (1 mentions, on)\n"
	if out.String() != want {
		t.Errorf("Highlight() =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestHighlightDisabled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "part.json", samplePart)

	tests := []struct {
		name string
		all  bool
		want string
	}{
		{
			name: "hidden",
			want: "Tagged with [[GFP]] in E. coli. More [[gfp]].\n",
		},
		{
			name: "shown",
			all:  true,
			want: "Tagged with [[GFP]] in [[E. coli]]. More [[gfp]].\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, nil)
			if err := app.Highlight(path, tt.all, []string{"coliID"}); err != nil {
				t.Fatalf("Highlight() error = %v", err)
			}
			want := tt.want +
				"* gfpID \"GFP\" (2 mentions, on)\n" +
				"* coliID \"E. coli\" (1 mentions, off)\n"
			if out.String() != want {
				t.Errorf("Highlight() =\n%s\nwant\n%s", out.String(), want)
			}
		})
	}

	app, _ := newTestApp(t, nil)
	if err := app.Highlight(path, false, []string{"missing"}); !errors.Is(err, annotation.ErrUnknownAnnotation) {
		t.Errorf("Highlight() error = %v, want ErrUnknownAnnotation", err)
	}
}

func TestParseWarnsAboutUnusedLinks(t *testing.T) {
	part := `{"description":"a [](x) fox","richDescription":"a [](x) [fox](y)"}`
	path := writeFile(t, t.TempDir(), "part.json", part)
	var logs bytes.Buffer
	app, out := newTestApp(t, &logs)

	if err := app.Parse(path); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := "a [](x) fox\ny\t\"fox\"\ty\t[8:11)\n"; out.String() != want {
		t.Errorf("Parse() output = %q, want %q", out.String(), want)
	}
	if !strings.Contains(logs.String(), "link to x has no mention text") {
		t.Errorf("missing warning in logs:\n%s", logs.String())
	}
	if strings.Contains(logs.String(), "link to y") {
		t.Errorf("unexpected warning for y:\n%s", logs.String())
	}
}

func TestAddMention(t *testing.T) {
	const part = `{"description":"Grow E. coli. Then stop.","richDescription":"Grow [E. coli](c). Then stop."}`

	t.Run("trim punctuation", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "part.json", part)
		app, _ := newTestApp(t, nil)

		m, err := app.AddMention(path, "c", 19, 24, true)
		if err != nil {
			t.Fatalf("AddMention() error = %v", err)
		}
		if m.Text != "stop" {
			t.Errorf("mention text = %q, want %q", m.Text, "stop")
		}

		saved, err := record.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if want := "Grow [E. coli](c). Then [stop](c)."; saved.RichDescription != want {
			t.Errorf("RichDescription = %q, want %q", saved.RichDescription, want)
		}
	})

	t.Run("keep punctuation", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "part.json", part)
		var logs bytes.Buffer
		app, _ := newTestApp(t, &logs)

		m, err := app.AddMention(path, "c", 19, 24, false)
		if err != nil {
			t.Fatalf("AddMention() error = %v", err)
		}
		if m.Text != "stop." {
			t.Errorf("mention text = %q, want %q", m.Text, "stop.")
		}
		if !strings.Contains(logs.String(), "ends in punctuation") {
			t.Errorf("missing punctuation warning in logs:\n%s", logs.String())
		}
	})

	t.Run("overlap", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "part.json", part)
		app, _ := newTestApp(t, nil)

		_, err := app.AddMention(path, "c", 8, 16, false)
		if !errors.Is(err, annotation.ErrMentionOverlap) {
			t.Fatalf("AddMention() error = %v, want ErrMentionOverlap", err)
		}
		saved, err := record.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if saved.RichDescription != "Grow [E. coli](c). Then stop." {
			t.Errorf("part changed: %q", saved.RichDescription)
		}
	})
}

func TestDisable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "part.json", samplePart)
	app, _ := newTestApp(t, nil)

	if err := app.Disable(path, []string{"gfpID"}); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}
	saved, err := record.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Tagged with GFP in [E. coli](coliID). More gfp."; saved.RichDescription != want {
		t.Errorf("RichDescription = %q, want %q", saved.RichDescription, want)
	}
	if saved.Description != samplePlain {
		t.Errorf("Description = %q", saved.Description)
	}

	if err := app.Disable(path, []string{"gfpID"}); !errors.Is(err, annotation.ErrUnknownAnnotation) {
		t.Errorf("second Disable() error = %v, want ErrUnknownAnnotation", err)
	}
}

const annotatePart = `{"displayId":"p","description":"GFP fluoresces. Express gfp in cells.","richDescription":"GFP fluoresces. Express gfp in cells."}`

func TestAnnotate(t *testing.T) {
	dir := t.TempDir()
	partPath := writeFile(t, dir, "part.json", annotatePart)
	writeFile(t, dir, "upper.lua", `function replace(text, id) return string.upper(text) .. "<" .. id .. ">" end`)
	termsPath := writeFile(t, dir, "terms.yaml", `
annotations:
  - id: http://identifiers.org/gfp
    label: GFP
    terms: [GFP]
    enabled: true
  - id: cells
    terms: [cells]
    script: upper.lua
    enabled: true
  - id: absent
    terms: [mouse]
`)
	outPath := filepath.Join(dir, "out.json")

	app, _ := newTestApp(t, nil)
	res, err := app.Annotate(partPath, termsPath, outPath)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if len(res.Added) != 2 || len(res.Skipped) != 1 || res.Skipped[0] != "absent" {
		t.Errorf("Annotate() result = %+v", res)
	}

	part, err := record.Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "[GFP](http://identifiers.org/gfp) fluoresces. Express [gfp](http://identifiers.org/gfp) in CELLS<cells>."
	if part.RichDescription != want {
		t.Errorf("RichDescription = %q, want %q", part.RichDescription, want)
	}
	if part.Description != "GFP fluoresces. Express gfp in cells." {
		t.Errorf("Description = %q", part.Description)
	}
}

func TestAnnotateReportsScriptErrors(t *testing.T) {
	dir := t.TempDir()
	partPath := writeFile(t, dir, "part.json", annotatePart)
	termsPath := writeFile(t, dir, "terms.yaml", `
annotations:
  - id: gfp
    terms: [GFP]
    enabled: true
  - id: cells
    terms: [cells]
    script: missing.lua
`)

	app, _ := newTestApp(t, nil)
	res, err := app.Annotate(partPath, termsPath, "")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Annotate() error = %v, want fs.ErrNotExist", err)
	}
	if len(res.Added) != 1 {
		t.Errorf("Added = %v, want [gfp]", res.Added)
	}

	part, err := record.Load(partPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(part.RichDescription, "[GFP](gfp) fluoresces.") {
		t.Errorf("part was not written in place: %q", part.RichDescription)
	}
}

func TestAnnotateSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	partPath := writeFile(t, dir, "part.json", samplePart)
	termsPath := writeFile(t, dir, "terms.yaml", `
annotations:
  - id: gfpID
    terms: [GFP]
`)

	app, _ := newTestApp(t, nil)
	res, err := app.Annotate(partPath, termsPath, "")
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if len(res.Added) != 0 || len(res.Skipped) != 1 {
		t.Errorf("Annotate() result = %+v", res)
	}
}

func TestAnnotateEmptyTermSet(t *testing.T) {
	dir := t.TempDir()
	partPath := writeFile(t, dir, "part.json", samplePart)
	termsPath := writeFile(t, dir, "terms.yaml", "annotations: []\n")

	app, _ := newTestApp(t, nil)
	if _, err := app.Annotate(partPath, termsPath, ""); !errors.Is(err, ErrNoTerms) {
		t.Errorf("Annotate() error = %v, want ErrNoTerms", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	partPath := writeFile(t, dir, "part.json", samplePart)
	textPath := filepath.Join(dir, "part.txt")

	logs := &syncBuffer{}
	app, _ := newTestApp(t, logs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Watch(ctx, partPath, textPath) }()

	waitFor(t, func() bool { return strings.Contains(logs.String(), "watching for edits") })

	created, err := os.ReadFile(textPath)
	if err != nil || string(created) != samplePlain {
		t.Fatalf("text file = %q, %v", created, err)
	}

	edited := "Tagged with GFP in E. coli bacteria. More gfp."
	if err := os.WriteFile(textPath, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	var part *record.Part
	waitFor(t, func() bool {
		part, err = record.Load(partPath)
		return err == nil && part.Description == edited
	})

	want := "Tagged with [GFP](gfpID) in [E. coli](coliID) bacteria. More [gfp](gfpID)."
	if part.RichDescription != want {
		t.Errorf("RichDescription = %q, want %q", part.RichDescription, want)
	}
	if part.Get("version").Int() != 2 {
		t.Error("unknown fields should survive the rewrite")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
	if s := app.Metrics().Snapshot(); s.EditCount != 1 {
		t.Errorf("EditCount = %d, want 1", s.EditCount)
	}
}

func TestWatchDropsDeletedAnnotations(t *testing.T) {
	dir := t.TempDir()
	partPath := writeFile(t, dir, "part.json", samplePart)
	textPath := writeFile(t, dir, "part.txt", "Tagged with GFP. More gfp.")

	app, _ := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The pending edit in the text file is applied before watching starts.
	if err := app.Watch(ctx, partPath, textPath); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	part, err := record.Load(partPath)
	if err != nil {
		t.Fatal(err)
	}
	if part.RichDescription != "Tagged with [GFP](gfpID). More [gfp](gfpID)." {
		t.Errorf("RichDescription = %q", part.RichDescription)
	}
	if s := app.Metrics().Snapshot(); s.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", s.Dropped)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met within 5s")
}
