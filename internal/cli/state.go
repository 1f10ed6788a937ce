package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/pkg/config"
	"github.com/yaklabco/regexmark/pkg/reporter"
	"github.com/yaklabco/regexmark/pkg/store"
)

func newStateCommand() *cobra.Command {
	var (
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "state [file]",
		Short: "Show the stored pattern, flags and cursor",
		Long: `Show the stored pattern, flags and cursor. Settings missing from the
store are initialized from the configured defaults.

With a file, also count the markers on the page and show the focused one.
Without one, --all lists every entry in the state store.`,
		Args: rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, &config.Config{Output: output}, func(ctx context.Context, rt *runtime) error {
				if all && len(args) > 0 {
					return usageError(errors.New("--all cannot be combined with a file"))
				}
				if len(args) == 0 {
					return runStoreState(ctx, rt, all)
				}

				s, err := rt.open(ctx, args[0])
				if err != nil {
					return err
				}
				status, err := s.Status(ctx)
				if err != nil {
					return err
				}
				return rt.report(ctx, reporter.FromStatus(status))
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "marked page to inspect, if not the default")
	cmd.Flags().BoolVar(&all, "all", false, "list every entry in the state store")

	return cmd
}

// runStoreState reports the stored settings without a page, and with all
// the raw store contents.
func runStoreState(ctx context.Context, rt *runtime, all bool) error {
	settings, err := store.LoadSettings(ctx, rt.store, store.Settings{
		Regex: rt.cfg.DefaultPattern,
		Flags: rt.cfg.DefaultFlags,
	})
	if err != nil {
		return err
	}

	rep := &reporter.Report{
		Command: reporter.CommandState,
		Pattern: settings.Regex,
		Flags:   settings.Flags,
	}
	cursor, ok, err := store.Cursor(ctx, rt.store)
	if err != nil {
		return err
	}
	if ok && cursor >= 0 {
		rep.Cursor = &cursor
	}

	if all {
		rep.Stored, err = rt.store.List(ctx)
		if err != nil {
			return err
		}
	}

	return rt.report(ctx, rep)
}
