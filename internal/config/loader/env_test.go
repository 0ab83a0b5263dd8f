package loader

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEnvLoaderFromMap(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	got := l.FromMap(map[string]string{
		"TEXTRANGER_LOG_LEVEL":           "debug",
		"TEXTRANGER_DIFF_MAX_TOKENS":     "500",
		"TEXTRANGER_WATCH_DEBOUNCE":      "250ms",
		"TEXTRANGER_OUTPUT_PRETTY":       "off",
		"TEXTRANGER_ANNOTATION_LANGUAGE": "de",
		"HOME":                           "/root",
	})

	want := map[string]any{
		"logging":    map[string]any{"level": "debug"},
		"diff":       map[string]any{"maxTokens": int64(500)},
		"watch":      map[string]any{"debounce": 250 * time.Millisecond},
		"output":     map[string]any{"pretty": false},
		"annotation": map[string]any{"language": "de"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoaderLoad(t *testing.T) {
	l := NewEnvLoader("TRTEST_")
	l.environ = func() []string {
		return []string{"TRTEST_OUTPUT_COLOR=never", "OTHER=1", "BROKEN"}
	}
	l.AddMapping("TRTEST_LEVEL", "logging.level")

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]any{"output": map[string]any{"color": "never"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"No", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"2s", 2 * time.Second},
		{`["a","b"]`, []any{"a", "b"}},
		{"auto", "auto"},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseValue(tt.in)); diff != "" {
			t.Errorf("parseValue(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestDotEnvLoader(t *testing.T) {
	fsys := fstest.MapFS{
		".env": {Data: []byte("# local overrides\nTEXTRANGER_LOG_LEVEL=warn\nexport TEXTRANGER_OUTPUT_COLOR=\"always\"\nUNRELATED=x\n")},
	}

	got, err := NewDotEnvLoaderWithFS(fsys, ".env", NewEnvLoader(DefaultEnvPrefix)).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]any{
		"logging": map[string]any{"level": "warn"},
		"output":  map[string]any{"color": "always"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	missing, err := NewDotEnvLoaderWithFS(fstest.MapFS{}, ".env", NewEnvLoader(DefaultEnvPrefix)).Load()
	if err != nil || missing != nil {
		t.Errorf("Load() of missing file = %v, %v; want nil, nil", missing, err)
	}
}
