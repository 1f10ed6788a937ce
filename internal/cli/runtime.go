package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/internal/configloader"
	"github.com/yaklabco/regexmark/internal/logging"
	"github.com/yaklabco/regexmark/pkg/config"
	"github.com/yaklabco/regexmark/pkg/document"
	"github.com/yaklabco/regexmark/pkg/fsutil"
	"github.com/yaklabco/regexmark/pkg/mark"
	"github.com/yaklabco/regexmark/pkg/reporter"
	"github.com/yaklabco/regexmark/pkg/session"
	"github.com/yaklabco/regexmark/pkg/store"
	"github.com/yaklabco/regexmark/pkg/view"
)

// runtime is what every page command needs: the resolved configuration,
// the open store, and a reporter writing to the command's output.
type runtime struct {
	cfg      *config.Config
	store    store.Store
	reporter reporter.Reporter
	view     *view.Terminal
	logger   *log.Logger
}

// newRuntime resolves the configuration with overrides from command flags
// layered on top, then opens the store and the reporter.
func newRuntime(cmd *cobra.Command, overrides *config.Config) (*runtime, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return nil, err
	}

	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return nil, usageError(err)
	}

	color, _ := cmd.Flags().GetString(flagColor)
	quiet, _ := cmd.Flags().GetBool(flagQuiet)

	rep, err := reporter.New(reporter.Options{
		Writer: cmd.OutOrStdout(),
		Format: format,
		Color:  color,
		Quiet:  quiet,
	})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.Config{Backend: cfg.Store.Backend, Path: cfg.Store.Path})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug("store opened", logging.FieldBackend, cfg.Store.Backend, logging.FieldStore, cfg.Store.Path)

	return &runtime{
		cfg:      cfg,
		store:    st,
		reporter: rep,
		view:     view.NewTerminalFor(cmd.OutOrStdout()),
		logger:   logger,
	}, nil
}

func loadConfig(cmd *cobra.Command, overrides *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if overrides == nil {
		overrides = &config.Config{}
	}
	if cmd.Flags().Changed(flagFormat) {
		overrides.Format, _ = cmd.Flags().GetString(flagFormat)
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, configError(err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, result.LoadedFrom)
	}

	return result.Config, nil
}

// Close releases the store.
func (r *runtime) Close() error {
	return r.store.Close()
}

// engine builds the marking engine the configuration describes.
func (r *runtime) engine() *mark.Engine {
	return mark.NewEngine(mark.Options{
		Classes: mark.Classes{
			Highlighted: r.cfg.Classes.Highlighted,
			Current:     r.cfg.Classes.Current,
		},
		SkipTags:     r.cfg.SkipTags,
		MaxMatches:   r.cfg.MaxMatchesPerNode,
		MatchTimeout: r.cfg.MatchTimeout,
	})
}

// open loads path and binds it to the store.
func (r *runtime) open(ctx context.Context, path string) (*session.Session, error) {
	docOpts := document.Options{
		Flavor: string(r.cfg.Flavor),
		Output: r.cfg.Output,
		Backups: fsutil.BackupConfig{
			Enabled: r.cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(r.cfg.Backups.Mode),
		},
	}

	s, err := session.Open(ctx, path, docOpts, r.store, session.Options{
		Engine: r.engine(),
		Defaults: store.Settings{
			Regex: r.cfg.DefaultPattern,
			Flags: r.cfg.DefaultFlags,
		},
		InjectStyles: r.cfg.InjectStylesEnabled(),
		View:         r.view,
	})
	if err != nil {
		return nil, err
	}

	doc := s.Document()
	r.logger.Debug("opened page",
		logging.FieldPath, doc.Path,
		logging.FieldOutput, doc.OutputPath,
		logging.FieldKind, doc.Kind)
	return s, nil
}

// report writes rep and turns an empty result into ErrNoMatchesFound.
func (r *runtime) report(ctx context.Context, rep *reporter.Report) error {
	if err := r.reporter.Report(ctx, rep); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if rep.NoMatches {
		return ErrNoMatchesFound
	}
	return nil
}

// withRuntime runs fn with a runtime and closes it afterwards.
func withRuntime(cmd *cobra.Command, overrides *config.Config, fn func(context.Context, *runtime) error) (err error) {
	rt, err := newRuntime(cmd, overrides)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(cmd.Context(), rt)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}
