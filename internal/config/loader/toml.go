package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textranger/internal/config/layer"
)

// IncludeKey lists other TOML files merged under the including file.
const IncludeKey = "@include"

// DefaultMaxIncludeDepth limits nested includes.
const DefaultMaxIncludeDepth = 8

// Errors returned while loading TOML files.
var (
	// ErrIncludeDepth indicates too many nested includes.
	ErrIncludeDepth = errors.New("include depth exceeded")

	// ErrIncludeCycle indicates a file includes itself directly or indirectly.
	ErrIncludeCycle = errors.New("include cycle")

	// ErrIncludeType indicates @include is neither a string nor a list of strings.
	ErrIncludeType = errors.New("@include must be string or array of strings")
)

// TOMLLoader loads configuration from a TOML file and the files it includes.
type TOMLLoader struct {
	fs       FileSystem
	path     string
	maxDepth int
}

// NewTOMLLoader creates a TOML loader reading from the OS file system.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:       fsys,
		path:     path,
		maxDepth: DefaultMaxIncludeDepth,
	}
}

// Load reads the configured file with its includes. A missing top-level
// file yields nil, nil.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.load(l.path, l.maxDepth, map[string]bool{})
}

func (l *TOMLLoader) load(file string, depth int, visiting map[string]bool) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepth, file)
	}
	if visiting[file] {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, file)
	}
	visiting[file] = true
	defer delete(visiting, file)

	data, err := l.fs.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", file, err)
	}

	config, err := parseTOML(file, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	delete(config, IncludeKey)

	// Includes are lower priority than the including file.
	merged := make(map[string]any)
	for _, inc := range includes {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(filepath.Dir(file), inc)
		}
		incConfig, err := l.load(incPath, depth-1, visiting)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		merged = layer.DeepMerge(merged, incConfig)
	}
	return layer.DeepMerge(merged, config), nil
}

func includeList(config map[string]any) ([]string, error) {
	switch v := config[IncludeKey].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, ErrIncludeType
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, ErrIncludeType
	}
}

// parseTOML parses TOML data into a map.
func parseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			pe.Line, pe.Column = decodeErr.Position()
		}
		return nil, pe
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
