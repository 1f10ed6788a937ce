package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmark/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "test.*", cfg.DefaultPattern)
	assert.Equal(t, "gm", cfg.DefaultFlags)
	assert.Equal(t, 100, cfg.MaxMatchesPerNode)
	assert.Subset(t, cfg.SkipTags, []string{"script", "style", "textarea", "noscript"})
	assert.Equal(t, "regexfindhighlighted", cfg.Classes.Highlighted)
	assert.Equal(t, "regexfindcurrent", cfg.Classes.Current)
	assert.True(t, cfg.InjectStylesEnabled())
	assert.True(t, cfg.BackupsEnabled())
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
default_pattern: "foo"
default_flags: gi
max_matches_per_node: 5
skip_tags: [script, style, code]
classes:
  highlighted: hl
  current: cur
inject_styles: false
match_timeout: 250ms
flavor: gfm
store:
  backend: sqlite
  path: /tmp/state.db
backups:
  enabled: false
  mode: none
`))
		require.NoError(t, err)

		assert.Equal(t, "foo", cfg.DefaultPattern)
		assert.Equal(t, "gi", cfg.DefaultFlags)
		assert.Equal(t, 5, cfg.MaxMatchesPerNode)
		assert.Equal(t, []string{"script", "style", "code"}, cfg.SkipTags)
		assert.Equal(t, config.ClassesConfig{Highlighted: "hl", Current: "cur"}, cfg.Classes)
		assert.False(t, cfg.InjectStylesEnabled())
		assert.Equal(t, 250*time.Millisecond, cfg.MatchTimeout)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, config.StoreConfig{Backend: "sqlite", Path: "/tmp/state.db"}, cfg.Store)
		assert.False(t, cfg.BackupsEnabled())
		assert.Equal(t, "none", cfg.Backups.Mode)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.InjectStyles)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("rules: {}\n"))
		require.Error(t, err)
	})
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.MatchTimeout = time.Second
	original.Format = "json"

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "match_timeout: 1s")
	assert.NotContains(t, string(data), "json")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	original.Format = ""
	assert.Equal(t, original, parsed)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\ndefault_pattern:`, string(data))
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	original := config.NewConfig()
	clone := original.Clone()
	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	clone.SkipTags[0] = "pre"
	*clone.InjectStyles = false
	*clone.Backups.Enabled = false

	assert.Equal(t, "script", original.SkipTags[0])
	assert.True(t, original.InjectStylesEnabled())
	assert.True(t, original.BackupsEnabled())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# regexmark configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err, "template must parse (full=%v)", full)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	}
}
