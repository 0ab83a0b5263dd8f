package config

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/textranger/internal/config/layer"
	"github.com/dshills/textranger/internal/config/loader"
)

// Layer names.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerDotEnv   = "dotenv"
	LayerEnv      = "environment"
	LayerFlags    = "flags"
)

// Config provides access to the merged configuration.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager

	configFile string
	dotEnvFile string
	envPrefix  string
	fs         loader.FileSystem

	// configErrors holds type errors met by section accessors, by path.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile sets the TOML configuration file.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithDotEnvFile sets the .env file.
func WithDotEnvFile(path string) Option {
	return func(c *Config) {
		c.dotEnvFile = path
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFileSystem sets the file system the files are read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// New creates a Config holding only the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		layers:       layer.NewManager(),
		envPrefix:    loader.DefaultEnvPrefix,
		fs:           loader.DefaultFS(),
		configErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layers.AddLayer(layer.NewLayer(LayerDefaults, layer.SourceBuiltin, defaultConfig()))
	return c
}

// Load reads the config file, the .env file and the environment.
// Missing files are skipped.
func (c *Config) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	env := loader.NewEnvLoader(c.envPrefix)
	sources := []struct {
		name   string
		source layer.Source
		path   string
		loader loader.Loader
	}{
		{LayerFile, layer.SourceFile, c.configFile, loader.NewTOMLLoaderWithFS(c.fs, c.configFile)},
		{LayerDotEnv, layer.SourceDotEnv, c.dotEnvFile, loader.NewDotEnvLoaderWithFS(c.fs, c.dotEnvFile, env)},
		{LayerEnv, layer.SourceEnv, "", env},
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if src.source != layer.SourceEnv && src.path == "" {
			continue
		}
		data, err := src.loader.Load()
		if err != nil {
			return fmt.Errorf("loading %s configuration: %w", src.name, err)
		}
		if len(data) == 0 {
			continue
		}
		l := layer.NewLayer(src.name, src.source, data)
		l.Path = src.path
		c.layers.AddLayer(l)
	}

	c.configErrors = make(map[string]error)
	return nil
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	v, _, ok := c.layers.Get(path)
	return v, ok
}

// Source returns the name of the layer providing path.
func (c *Config) Source(path string) string {
	return c.layers.WhichLayer(path)
}

// Set overrides a setting in the flags layer.
func (c *Config) Set(path string, value any) error {
	if len(layer.SplitPath(path)) == 0 {
		return ErrInvalidPath
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.layers.Set(LayerFlags, layer.SourceArgs, path, value)
	delete(c.configErrors, path)
	return nil
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	return c.layers.Merge()
}

// Errors returns the type errors met while reading sections, sorted by path.
func (c *Config) Errors() []error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.configErrors))
	for p := range c.configErrors {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]error, 0, len(paths))
	for _, p := range paths {
		out = append(out, c.configErrors[p])
	}
	return out
}

func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	c.configErrors[path] = err
	c.mu.Unlock()
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetDuration returns a duration at the given path. Strings are parsed
// with time.ParseDuration and bare integers are milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Path: path, Expected: "duration", Actual: fmt.Sprintf("string %q", val)}
		}
		return d, nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
		},
		"diff": map[string]any{
			"maxTokens":   20000,
			"maxMemoryMB": 100,
		},
		"annotation": map[string]any{
			"language":   "en",
			"ignoreCase": true,
		},
		"watch": map[string]any{
			"debounce": "100ms",
		},
		"output": map[string]any{
			"color":  "auto",
			"pretty": true,
		},
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
