package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/textranger/internal/app"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
	color      string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "textranger",
		Short: "Annotate text ranges and keep them anchored across edits",
		Long: `textranger reads part records whose rich description links terms to
ontology identifiers, written as [label](id). It renders, lists and adds
those annotations, and re-anchors them when the plain description is edited.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.SetVersionTemplate(fmt.Sprintf("textranger %s (commit %s, built %s)\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Path to TOML configuration file")
	pf.StringVar(&g.envFile, "env-file", ".env", "Path to .env file")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&g.color, "color", "", "Color output (auto, always, never)")

	root.AddCommand(
		newRenderCmd(&g),
		newParseCmd(&g),
		newDiffCmd(&g),
		newAnnotateCmd(&g),
		newHighlightCmd(&g),
		newMentionCmd(&g),
		newDisableCmd(&g),
		newHTMLCmd(&g),
		newWatchCmd(&g),
		newVersionCmd(),
	)
	return root
}

// withApp creates the application for cmd, runs fn and shuts it down.
func withApp(cmd *cobra.Command, g *globalFlags, fn func(*app.Application) error) error {
	application, err := app.New(cmd.Context(), app.Options{
		ConfigPath: g.configPath,
		EnvFile:    g.envFile,
		LogLevel:   g.logLevel,
		Color:      g.color,
		Stdout:     cmd.OutOrStdout(),
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer application.Shutdown()
	return fn(application)
}
