package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmark/internal/cli"
	"github.com/yaklabco/regexmark/pkg/fsutil"
	"github.com/yaklabco/regexmark/pkg/pattern"
	"github.com/yaklabco/regexmark/pkg/session"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "regexmark", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color", "format", "quiet"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"highlight", "next", "prev", "clear", "state", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	tests := map[string][]string{
		"highlight": {"flags", "output", "flavor"},
		"clear":     {"purge-styles", "restore", "output"},
		"init":      {"force", "full", "user", "output"},
	}

	for name, flags := range tests {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		for _, flag := range flags {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s is missing --%s", name, flag)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	_, patternErr := pattern.ParseFlags("x")
	require.Error(t, patternErr)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"no matches", cli.ErrNoMatchesFound, cli.ExitNoMatches},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{"pattern", fmt.Errorf("highlight: %w", patternErr), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: bad", cli.ErrConfig), cli.ExitConfigError},
		{"no target", session.ErrNoActiveTarget, cli.ExitNoInput},
		{"not found", fsutil.ErrNotFound, cli.ExitNoInput},
		{"modified", fsutil.ErrModified, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
