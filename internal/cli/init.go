package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/regexmark/internal/configloader"
	"github.com/yaklabco/regexmark/internal/logging"
	"github.com/yaklabco/regexmark/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new regexmark configuration file",
		Long: `Create a new .regexmark.yml configuration file in the current directory
with sensible defaults.

Examples:
  regexmark init                     Create minimal .regexmark.yml
  regexmark init --full              Write every setting with its default
  regexmark init --user              Create the per-user config instead
  regexmark init --output custom.yml Write to a custom file path`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting with its default value")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the user config under $XDG_CONFIG_HOME/regexmark")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .regexmark.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags.user && flags.output != "" {
		return usageError(errors.New("--user and --output cannot be combined"))
	}

	outputPath := flags.output
	switch {
	case flags.user:
		dir := configloader.UserConfigDir()
		if dir == "" {
			return errors.New("no user config directory: set XDG_CONFIG_HOME or HOME")
		}
		outputPath = filepath.Join(dir, "config.yaml")
	case outputPath == "":
		outputPath = configloader.ProjectConfigFiles[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return err
	}

	if err := configloader.WriteConfig(ctx, absPath, content, flags.force); err != nil {
		return usageError(err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}
