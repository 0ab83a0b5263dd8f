package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvLoader loads prefixed variables from a .env file. The file is
// parsed, not applied to the process environment.
type DotEnvLoader struct {
	fs   FileSystem
	path string
	env  *EnvLoader
}

// NewDotEnvLoader creates a loader reading path with the variable rules of env.
func NewDotEnvLoader(path string, env *EnvLoader) *DotEnvLoader {
	return NewDotEnvLoaderWithFS(DefaultFS(), path, env)
}

// NewDotEnvLoaderWithFS creates a .env loader with a custom file system.
func NewDotEnvLoaderWithFS(fsys FileSystem, path string, env *EnvLoader) *DotEnvLoader {
	return &DotEnvLoader{fs: fsys, path: path, env: env}
}

// Load reads the file. A missing file yields nil, nil.
func (l *DotEnvLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", l.path, err)
	}

	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, &ParseError{Path: l.path, Message: err.Error(), Err: err}
	}
	return l.env.FromMap(vars), nil
}
