package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/textranger/internal/app"
)

func newRenderCmd(g *globalFlags) *cobra.Command {
	var plain, projection bool
	cmd := &cobra.Command{
		Use:   "render PART",
		Short: "Print the rich description of a part record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				return a.Render(args[0], plain, projection)
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the plain text instead")
	cmd.Flags().BoolVar(&projection, "projection", false, "List where each mention ends up in the rendered text")
	cmd.MarkFlagsMutuallyExclusive("plain", "projection")
	return cmd
}

func newParseCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse PART",
		Short: "List the annotations of a part record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				return a.Parse(args[0])
			})
		},
	}
}

func newDiffCmd(g *globalFlags) *cobra.Command {
	var stat bool
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Show the word diff between two text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				return a.Diff(args[0], args[1], stat)
			})
		},
	}
	cmd.Flags().BoolVar(&stat, "stat", false, "Print inserted, deleted and unchanged rune counts only")
	return cmd
}

func newAnnotateCmd(g *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "annotate PART TERMS",
		Short: "Add the annotations of a YAML term set to a part record",
		Long: `annotate finds every whole-word occurrence of each entry's terms in the
part's description and links them to the entry's id. An entry with a script
renders its mentions through the script's replace(text, id) function.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				res, err := a.Annotate(args[0], args[1], output)
				if res != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "added %d, skipped %d", len(res.Added), len(res.Skipped))
					if len(res.Skipped) > 0 {
						fmt.Fprintf(cmd.OutOrStdout(), " (%s)", strings.Join(res.Skipped, ", "))
					}
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of PART")
	return cmd
}

func newHighlightCmd(g *globalFlags) *cobra.Command {
	var all bool
	var disable []string
	cmd := &cobra.Command{
		Use:   "highlight PART",
		Short: "Show the description with every mention highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				return a.Highlight(args[0], all, disable)
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also highlight mentions of disabled annotations")
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "Show these annotation IDs as disabled")
	return cmd
}

func newMentionCmd(g *globalFlags) *cobra.Command {
	var trim bool
	cmd := &cobra.Command{
		Use:   "mention PART ID START END",
		Short: "Link another range of the description to an annotation",
		Long: `mention links the runes [START, END) of PART's description to the
annotation ID, which must already be linked in PART. The range may not
overlap an existing mention.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[2], args[3])
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(a *app.Application) error {
				m, err := a.AddMention(args[0], args[1], start, end, trim)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", m.Range(), m.Text)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&trim, "trim-punctuation", false, "Leave a trailing punctuation mark out of the mention")
	return cmd
}

func parseRange(startArg, endArg string) (int, int, error) {
	start, err := strconv.Atoi(startArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid START %q: %w", startArg, err)
	}
	end, err := strconv.Atoi(endArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid END %q: %w", endArg, err)
	}
	return start, end, nil
}

func newDisableCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "disable PART ID...",
		Short: "Unlink the mentions of annotations, keeping the text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				return a.Disable(args[0], args[1:])
			})
		},
	}
}

func newHTMLCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "html PART",
		Short: "Render the rich description as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app.Application) error {
				return a.HTML(args[0])
			})
		},
	}
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch PART [TEXT]",
		Short: "Re-anchor annotations whenever a plain text file is saved",
		Long: `watch keeps PART in step with TEXT, a plain text copy of its description
that is created when missing. TEXT defaults to PART with a .txt extension.
Stop with Ctrl-C.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := textPathFor(args[0])
			if len(args) == 2 {
				text = args[1]
			}
			return withApp(cmd, g, func(a *app.Application) error {
				return a.Watch(cmd.Context(), args[0], text)
			})
		},
	}
}

// textPathFor replaces the extension of a part path with .txt.
func textPathFor(part string) string {
	return strings.TrimSuffix(part, filepath.Ext(part)) + ".txt"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textranger %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		},
	}
}
