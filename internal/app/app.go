// Package app wires configuration, logging and the annotation packages into
// the operations behind the textranger command.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"golang.org/x/text/language"

	"github.com/dshills/textranger/internal/annotation"
	"github.com/dshills/textranger/internal/config"
	"github.com/dshills/textranger/internal/engine/tracking"
	"github.com/dshills/textranger/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file.
	ConfigPath string

	// EnvFile is the path to a .env file. Missing files are ignored.
	EnvFile string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// Color overrides output.color when set.
	Color string

	// Stdout receives command output. Defaults to os.Stdout.
	Stdout io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Application holds the loaded configuration and the resources opened by
// the commands it runs.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *Logger
	metrics *Metrics
	stdout  io.Writer

	lang    language.Tag
	scripts []*lua.Script

	opts Options
}

// New loads the configuration and creates an Application.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.LogLevel != "" && !ValidLogLevel(opts.LogLevel) {
		return nil, NewOperationError("configure", "--log-level", ErrInvalidLogLevel)
	}

	cfg := config.New(
		config.WithConfigFile(opts.ConfigPath),
		config.WithDotEnvFile(opts.EnvFile),
	)
	if err := cfg.Load(ctx); err != nil {
		return nil, NewOperationError("load", "configuration", err)
	}
	if opts.LogLevel != "" {
		_ = cfg.Set("logging.level", opts.LogLevel)
	}
	if opts.Color != "" {
		_ = cfg.Set("output.color", opts.Color)
	}

	app := &Application{
		config:  cfg,
		metrics: NewMetrics(),
		stdout:  opts.Stdout,
		lang:    language.English,
		opts:    opts,
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging().Level),
		Output: opts.LogOutput,
		Prefix: "textranger",
	})

	tag, err := language.Parse(cfg.Annotation().Language)
	if err != nil {
		app.logger.Warn("annotation.language %q: %v, using en", cfg.Annotation().Language, err)
	} else {
		app.lang = tag
	}

	log := app.logger.WithComponent("config")
	_ = cfg.Output()
	_ = cfg.Diff()
	_ = cfg.Watch()
	for _, err := range cfg.Errors() {
		log.Warn("%v", err)
	}
	log.Debug("loaded, file=%q dotenv=%q", opts.ConfigPath, opts.EnvFile)

	return app, nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Stdout returns the writer command output goes to.
func (app *Application) Stdout() io.Writer {
	return app.stdout
}

// DiffOptions returns the word diff limits from the configuration.
func (app *Application) DiffOptions() tracking.DiffOptions {
	d := app.config.Diff()
	return tracking.DiffOptions{MaxTokens: d.MaxTokens, MaxMemoryMB: d.MaxMemoryMB}
}

// DocumentOptions returns the options documents are created with.
func (app *Application) DocumentOptions() []annotation.Option {
	return []annotation.Option{
		annotation.WithLanguage(app.lang),
		annotation.WithIgnoreCase(app.config.Annotation().IgnoreCase),
		annotation.WithDiffOptions(app.DiffOptions()),
	}
}

// Shutdown releases the Lua states opened by Annotate.
func (app *Application) Shutdown() {
	app.mu.Lock()
	scripts := app.scripts
	app.scripts = nil
	app.mu.Unlock()

	for _, s := range scripts {
		_ = s.Close()
	}
}

func (app *Application) addScript(s *lua.Script) {
	app.mu.Lock()
	app.scripts = append(app.scripts, s)
	app.mu.Unlock()
}
