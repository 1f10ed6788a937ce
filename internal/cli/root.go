// Package cli provides the Cobra command structure for regexmark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagColor  = "color"
	flagFormat = "format"
	flagQuiet  = "quiet"
)

// NewRootCommand creates the root regexmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "regexmark",
		Short: "Highlight regular expression matches in HTML and Markdown pages",
		Long: `regexmark finds every match of a regular expression in the text of an
HTML or Markdown page, wraps each match in a highlight marker, and steps a
focus cursor through the markers from one invocation to the next.

The pattern, its flags and the cursor are kept in a small state store, so
"regexmark next page.html" picks up where the last command left off.
Markdown pages are rendered to a sibling .html file, which holds the markers.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().String(flagFormat, "", "output format: text, json (default text)")
	rootCmd.PersistentFlags().BoolP(flagQuiet, "q", false, "print only the focused match")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newStepCommand("next", "Move the focus to the next match"))
	rootCmd.AddCommand(newStepCommand("prev", "Move the focus to the previous match"))
	rootCmd.AddCommand(newClearCommand())
	rootCmd.AddCommand(newStateCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
