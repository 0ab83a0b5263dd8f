package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTerms = `
annotations:
  - id: http://identifiers.org/uniprot:P42212
    label: GFP
    terms: [GFP, green fluorescent protein]
    enabled: true
  - id: http://identifiers.org/taxonomy:562
    label: E. coli
    script: scripts/upper.lua
`

func TestParseTerms(t *testing.T) {
	set, err := ParseTerms([]byte(sampleTerms))
	require.NoError(t, err)
	require.Len(t, set.Terms, 2)

	gfp := set.Terms[0]
	assert.Equal(t, "http://identifiers.org/uniprot:P42212", gfp.ID)
	assert.Equal(t, []string{"GFP", "green fluorescent protein"}, gfp.Terms)
	assert.True(t, gfp.Enabled)
	assert.Empty(t, gfp.Script)

	coli := set.Terms[1]
	assert.Equal(t, []string{"E. coli"}, coli.Terms)
	assert.False(t, coli.Enabled)
	assert.Equal(t, "scripts/upper.lua", coli.Script)
}

func TestParseTermsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "annotations:\n  - label: x\n"},
		{"no terms or label", "annotations:\n  - id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTerms([]byte(tt.yaml))
			assert.True(t, errors.Is(err, ErrInvalidTerm), "got %v", err)
		})
	}

	_, err := ParseTerms([]byte("annotations: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTerms), 0o644))

	set, err := LoadTerms(path)
	require.NoError(t, err)
	assert.Len(t, set.Terms, 2)
}
