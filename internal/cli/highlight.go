package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/internal/logging"
	"github.com/yaklabco/regexmark/pkg/config"
	"github.com/yaklabco/regexmark/pkg/reporter"
)

type highlightFlags struct {
	flags  string
	output string
	flavor string
}

const highlightLongDescription = `Highlight every match of a pattern in a page and focus the first one.

Markers from an earlier highlight are removed first. The pattern and flags
are stored and used again when no pattern is given. Flags are any of:
  g  mark every match in each text node, not only the first text node
  i  ignore case
  m  ^ and $ match at line breaks
  u  unicode

Examples:
  regexmark highlight page.html 'colou?r' --flags gi
  regexmark highlight README.md 'TODO|FIXME'
  regexmark highlight page.html            # reuse the stored pattern`

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:   "highlight <file> [pattern]",
		Short: "Mark every match of a pattern in a page",
		Long:  highlightLongDescription,
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.flags, "flags", "f", "", "regular expression flags (default: stored flags)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the marked page here instead")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")

	return cmd
}

func runHighlight(cmd *cobra.Command, args []string, flags *highlightFlags) error {
	overrides := &config.Config{
		Output: flags.output,
		Flavor: config.Flavor(flags.flavor),
	}

	return withRuntime(cmd, overrides, func(ctx context.Context, rt *runtime) error {
		s, err := rt.open(ctx, args[0])
		if err != nil {
			return err
		}

		settings, err := s.Init(ctx)
		if err != nil {
			return err
		}

		if len(args) == 2 {
			settings.Regex = args[1]
		}
		if cmd.Flags().Changed("flags") {
			settings.Flags = flags.flags
		}

		rt.logger.Debug("highlighting",
			logging.FieldPattern, settings.Regex,
			logging.FieldFlags, settings.Flags)

		result, err := s.Highlight(ctx, settings.Regex, settings.Flags)
		if err != nil {
			return err
		}

		rep := reporter.FromHighlight(s, result)
		if settings.Regex == "" {
			rep.NoMatches = false
		}
		return rt.report(ctx, rep)
	})
}
