package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmark/internal/cli"
)

const testPage = "<html><head></head><body><p>cat cats catalog</p><script>var cat;</script></body></html>"

type workspace struct {
	dir    string
	page   string
	config string
}

func newWorkspace(t *testing.T, extraConfig string) *workspace {
	t.Helper()

	dir := t.TempDir()
	ws := &workspace{
		dir:    dir,
		page:   filepath.Join(dir, "page.html"),
		config: filepath.Join(dir, "regexmark.yml"),
	}

	require.NoError(t, os.WriteFile(ws.page, []byte(testPage), 0o644))
	cfg := "store:\n  path: " + filepath.Join(dir, "state", "state.yml") + "\n" + extraConfig
	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o644))
	return ws
}

// run executes one CLI invocation against the workspace.
func (ws *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", ws.config, "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), err
}

func (ws *workspace) read(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestHighlightAndNavigate(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	out, err := ws.run(t, "highlight", ws.page, "cat", "--flags", "g")
	require.NoError(t, err)
	assert.Contains(t, out, "/cat/g")
	assert.Contains(t, out, "3 matches")
	assert.Contains(t, out, "1/3")

	page := ws.read(t, ws.page)
	assert.Equal(t, 3, strings.Count(page, `class="regexfindhighlighted`))
	assert.Equal(t, 1, strings.Count(page, "regexfindcurrent\""))
	assert.Contains(t, page, `id="regexFindHighlightStyle"`)
	assert.Contains(t, page, "var cat;")

	steps := []struct {
		command string
		want    string
	}{
		{"next", "2/3"},
		{"next", "3/3"},
		{"next", "1/3"},
		{"prev", "3/3"},
	}
	for _, step := range steps {
		out, err := ws.run(t, step.command, ws.page)
		require.NoError(t, err, step.command)
		assert.Contains(t, out, step.want, step.command)
	}

	out, err = ws.run(t, "state", ws.page)
	require.NoError(t, err)
	assert.Contains(t, out, "markers: 3")
	assert.Contains(t, out, "cursor: 3/3")
	assert.Contains(t, out, "current: cat")
}

func TestHighlight_ReusesStoredPattern(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "default_pattern: \"cat\\\\w+\"\ndefault_flags: g\n")

	out, err := ws.run(t, "highlight", ws.page)
	require.NoError(t, err)
	assert.Contains(t, out, `/cat\w+/g`)
	assert.Contains(t, out, "2 matches")

	out, err = ws.run(t, "state", "--format", "json")
	require.NoError(t, err)

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, `cat\w+`, state["pattern"])
	assert.Equal(t, "g", state["flags"])
	assert.InDelta(t, 0, state["cursor"], 0)
	assert.NotContains(t, state, "stored")

	out, err = ws.run(t, "state", "--all", "--format", "json")
	require.NoError(t, err)
	state = nil
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, map[string]any{"regex": `cat\w+`, "flags": "g", "idx": "0"}, state["stored"])

	out, err = ws.run(t, "state", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "idx: 0")

	_, err = ws.run(t, "state", "--all", ws.page)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestHighlight_Errors(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	_, err := ws.run(t, "highlight", ws.page, "(")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	assert.Equal(t, testPage, ws.read(t, ws.page), "an invalid pattern must not touch the page")

	_, err = ws.run(t, "highlight", ws.page, "cat", "--flags", "gq")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = ws.run(t, "highlight", filepath.Join(ws.dir, "missing.html"), "cat")
	assert.Equal(t, cli.ExitNoInput, cli.ExitCode(err))

	_, err = ws.run(t, "highlight")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = ws.run(t, "highlight", ws.page, "--no-such-flag")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestHighlight_NoMatches(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	out, err := ws.run(t, "highlight", ws.page, "dog")
	require.ErrorIs(t, err, cli.ErrNoMatchesFound)
	assert.Equal(t, cli.ExitNoMatches, cli.ExitCode(err))
	assert.Contains(t, out, "No matches.")

	out, err = ws.run(t, "next", ws.page)
	require.NoError(t, err, "stepping with no markers is a no-op")
	assert.Contains(t, out, "No matches.")
}

func TestClear(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	_, err := ws.run(t, "highlight", ws.page, "cat", "--flags", "g")
	require.NoError(t, err)

	out, err := ws.run(t, "clear", ws.page, "--purge-styles")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 3 markers and 3 stylesheets.")

	page := ws.read(t, ws.page)
	assert.NotContains(t, page, "regexfind")
	assert.Contains(t, page, "cat cats catalog")

	out, err = ws.run(t, "next", ws.page)
	require.NoError(t, err)
	assert.Contains(t, out, "No matches.")
}

func TestClear_Restore(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	_, err := ws.run(t, "highlight", ws.page, "cat")
	require.NoError(t, err)
	require.NotEqual(t, testPage, ws.read(t, ws.page))

	out, err := ws.run(t, "clear", ws.page, "--restore")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored from backup.")
	assert.Equal(t, testPage, ws.read(t, ws.page))

	_, err = ws.run(t, "clear", ws.page, "--restore", "--purge-styles")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestMarkdownPage(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "flavor: gfm\n")
	source := filepath.Join(ws.dir, "notes.md")
	markdown := "# Notes\n\nTODO: write tests\n\n- [ ] TODO later\n"
	require.NoError(t, os.WriteFile(source, []byte(markdown), 0o644))

	out, err := ws.run(t, "highlight", source, "TODO", "--flags", "g")
	require.NoError(t, err)
	assert.Contains(t, out, "2 matches")

	assert.Equal(t, markdown, ws.read(t, source), "the markdown source is never rewritten")
	rendered := ws.read(t, filepath.Join(ws.dir, "notes.html"))
	assert.Equal(t, 2, strings.Count(rendered, `class="regexfindhighlighted`))

	out, err = ws.run(t, "next", source)
	require.NoError(t, err)
	assert.Contains(t, out, "2/2")
}

func TestJSONOutput(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	out, err := ws.run(t, "highlight", ws.page, "cats?", "--flags", "g", "--format", "json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "highlight", report["command"])
	assert.InDelta(t, 3, report["markers"], 0)
	assert.Equal(t, true, report["written"])

	focus, ok := report["focus"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cat", focus["match"])
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "flavor: nope\n")

	_, err := ws.run(t, "state")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestInit(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")
	target := filepath.Join(ws.dir, "new", ".regexmark.yml")

	_, err := ws.run(t, "init", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, ws.read(t, target), "# regexmark configuration")

	_, err = ws.run(t, "init", "--output", target)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = ws.run(t, "init", "--output", target, "--force", "--full")
	require.NoError(t, err)
	assert.Contains(t, ws.read(t, target), "max_matches_per_node: 100")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "")

	out, err := ws.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}
