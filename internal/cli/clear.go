package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/pkg/config"
	"github.com/yaklabco/regexmark/pkg/reporter"
)

type clearFlags struct {
	purgeStyles bool
	restore     bool
	output      string
}

func newClearCommand() *cobra.Command {
	flags := &clearFlags{}

	cmd := &cobra.Command{
		Use:   "clear <file>",
		Short: "Remove every marker from a page",
		Long: `Remove every marker from a page and forget the cursor. The stored
pattern and flags are kept.

Examples:
  regexmark clear page.html
  regexmark clear page.html --purge-styles   # also remove the stylesheet
  regexmark clear page.html --restore        # put back the pre-highlight backup`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.purgeStyles, "purge-styles", false, "also remove the injected marker stylesheet")
	cmd.Flags().BoolVar(&flags.restore, "restore", false, "restore the page from its backup instead")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "marked page to clear, if not the default")

	return cmd
}

func runClear(cmd *cobra.Command, path string, flags *clearFlags) error {
	if flags.restore && flags.purgeStyles {
		return usageError(errors.New("--restore and --purge-styles cannot be combined"))
	}

	return withRuntime(cmd, &config.Config{Output: flags.output}, func(ctx context.Context, rt *runtime) error {
		s, err := rt.open(ctx, path)
		if err != nil {
			return err
		}

		if flags.restore {
			restored, err := s.Restore(ctx)
			if err != nil {
				return err
			}
			return rt.report(ctx, reporter.FromRestore(s, restored))
		}

		result, err := s.Clear(ctx, flags.purgeStyles)
		if err != nil {
			return err
		}
		return rt.report(ctx, reporter.FromClear(s, result))
	})
}
