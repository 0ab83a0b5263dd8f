package config

import (
	"errors"
	"fmt"
	"time"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string
}

// DiffConfig provides type-safe access to word diff limits.
type DiffConfig struct {
	// MaxTokens switches to the fast diff above this many tokens.
	// Zero uses the default and a negative value disables the limit.
	MaxTokens int

	// MaxMemoryMB switches to the fast diff when the exact diff would use
	// more memory than this.
	MaxMemoryMB int
}

// AnnotationConfig provides type-safe access to term matching settings.
type AnnotationConfig struct {
	// Language is the BCP 47 tag used to match terms.
	Language string

	// IgnoreCase matches terms regardless of case.
	IgnoreCase bool
}

// WatchConfig provides type-safe access to file watching settings.
type WatchConfig struct {
	// Debounce is the quiet period before a saved file is read.
	Debounce time.Duration
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// OutputConfig provides type-safe access to output settings.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string

	// Pretty indents JSON output.
	Pretty bool
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
	}
}

// Diff returns type-safe access to word diff settings.
func (c *Config) Diff() DiffConfig {
	return DiffConfig{
		MaxTokens:   c.getIntOr("diff.maxTokens", 20000),
		MaxMemoryMB: c.getIntOr("diff.maxMemoryMB", 100),
	}
}

// Annotation returns type-safe access to term matching settings.
func (c *Config) Annotation() AnnotationConfig {
	return AnnotationConfig{
		Language:   c.getStringOr("annotation.language", "en"),
		IgnoreCase: c.getBoolOr("annotation.ignoreCase", true),
	}
}

// Watch returns type-safe access to file watching settings.
func (c *Config) Watch() WatchConfig {
	return WatchConfig{
		Debounce: c.getDurationOr("watch.debounce", 100*time.Millisecond),
	}
}

// Output returns type-safe access to output settings. NO_COLOR in the
// environment forces Color to "never".
func (c *Config) Output() OutputConfig {
	out := OutputConfig{
		Color:  c.getStringOr("output.color", ColorAuto),
		Pretty: c.getBoolOr("output.pretty", true),
	}
	switch out.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		c.recordConfigError("output.color", fmt.Errorf("%w: output.color %q", ErrInvalidValue, out.Color))
		out.Color = ColorAuto
	}
	if noColor, err := c.GetBool("output.noColor"); err == nil && noColor {
		out.Color = ColorNever
	}
	return out
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}
