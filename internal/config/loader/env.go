package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/textranger/internal/config/layer"
)

// DefaultEnvPrefix is the prefix of environment variables read into the
// configuration.
const DefaultEnvPrefix = "TEXTRANGER_"

// EnvLoader loads configuration from environment variables.
//
// TEXTRANGER_DIFF_MAX_TOKENS maps to diff.maxTokens: the first segment after
// the prefix names the section and the rest form a camelCase key. Explicit
// mappings override that rule.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// defaultEnvMapping covers settings whose key does not follow the
// section-then-camelCase rule.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "logging.level",
		prefix + "NO_COLOR":  "output.noColor",
	}
}

// AddMapping maps an environment variable to a configuration path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the process environment.
func (l *EnvLoader) Load() (map[string]any, error) {
	vars := make(map[string]string)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if ok {
			vars[name] = value
		}
	}
	return l.FromMap(vars), nil
}

// FromMap converts prefixed variables from vars into a configuration map.
// Variables without the prefix are ignored.
func (l *EnvLoader) FromMap(vars map[string]string) map[string]any {
	config := make(map[string]any)
	for name, value := range vars {
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.mapping[name]
		if !ok {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		layer.SetByPath(config, path, parseValue(value))
	}
	return config
}

// envToPath converts TEXTRANGER_DIFF_MAX_TOKENS to diff.maxTokens.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	key := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			key += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + key
}

// parseValue converts an environment string into the most specific type:
// bool, int64, float64, time.Duration, JSON array or object, else string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}
