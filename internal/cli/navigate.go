package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/pkg/config"
	"github.com/yaklabco/regexmark/pkg/mark"
	"github.com/yaklabco/regexmark/pkg/reporter"
)

// newStepCommand builds "next" or "prev".
func newStepCommand(name, short string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   name + " <file>",
		Short: short,
		Long: short + `, wrapping around at the ends.

The cursor is stored, so repeated invocations walk through the markers
left by the last highlight. With no markers on the page nothing changes.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := mark.ParseDirection(name)
			if err != nil {
				return usageError(err)
			}
			return runStep(cmd, args[0], name, dir, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "marked page to navigate, if not the default")

	return cmd
}

func runStep(cmd *cobra.Command, path, command string, dir mark.Direction, output string) error {
	return withRuntime(cmd, &config.Config{Output: output}, func(ctx context.Context, rt *runtime) error {
		s, err := rt.open(ctx, path)
		if err != nil {
			return err
		}

		result, err := s.Step(ctx, dir)
		if errors.Is(err, mark.ErrNoMatches) {
			// Stepping through nothing is a no-op, not a failure.
			if err := rt.reporter.Report(ctx, reporter.FromStep(command, s, nil)); err != nil {
				return fmt.Errorf("report: %w", err)
			}
			return nil
		}
		if err != nil {
			return err
		}

		return rt.report(ctx, reporter.FromStep(command, s, result))
	})
}
