// Package config defines the regexmark configuration types.
// These are plain data structures; loading and merging live in configloader.
package config

import (
	"time"

	"github.com/yaklabco/regexmark/pkg/mark"
)

// Flavor is the Markdown flavor used when rendering Markdown pages.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Default values for a fresh configuration.
const (
	DefaultPattern           = "test.*"
	DefaultFlags             = "gm"
	DefaultMaxMatchesPerNode = 100
	DefaultHighlightedClass  = "regexfindhighlighted"
	DefaultCurrentClass      = "regexfindcurrent"
	DefaultStoreBackend      = "file"
	DefaultBackupMode        = "sidecar"
)

// DefaultSkipTags lists the elements never marked in a fresh configuration.
func DefaultSkipTags() []string {
	return mark.DefaultSkipTags()
}

// ClassesConfig names the classes written onto marker elements.
type ClassesConfig struct {
	Highlighted string `yaml:"highlighted,omitempty"`
	Current     string `yaml:"current,omitempty"`
}

// StoreConfig selects where the pattern, flags and cursor are kept.
type StoreConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend,omitempty"`

	// Path is the state file. Empty means the XDG state directory.
	Path string `yaml:"path,omitempty"`
}

// BackupsConfig controls the backup taken before a page is first rewritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure for regexmark.
type Config struct {
	// DefaultPattern is stored as the pattern on first run.
	DefaultPattern string `yaml:"default_pattern,omitempty"`

	// DefaultFlags is stored as the flag string on first run.
	DefaultFlags string `yaml:"default_flags,omitempty"`

	// MaxMatchesPerNode caps the matches collected from one text node.
	MaxMatchesPerNode int `yaml:"max_matches_per_node,omitempty"`

	// SkipTags lists elements whose text is never marked.
	SkipTags []string `yaml:"skip_tags,omitempty"`

	Classes ClassesConfig `yaml:"classes,omitempty"`

	// InjectStyles adds the marker stylesheet to highlighted pages.
	InjectStyles *bool `yaml:"inject_styles,omitempty"`

	// MatchTimeout bounds a single match attempt. Zero means unbounded.
	MatchTimeout time.Duration `yaml:"match_timeout,omitempty"`

	// Flavor is the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	Store StoreConfig `yaml:"store,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format is the report format, "text" or "json".
	Format string `yaml:"-"`

	// Output overrides where the marked page is written.
	Output string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		DefaultPattern:    DefaultPattern,
		DefaultFlags:      DefaultFlags,
		MaxMatchesPerNode: DefaultMaxMatchesPerNode,
		SkipTags:          DefaultSkipTags(),
		Classes: ClassesConfig{
			Highlighted: DefaultHighlightedClass,
			Current:     DefaultCurrentClass,
		},
		InjectStyles: Bool(true),
		Flavor:       FlavorCommonMark,
		Store: StoreConfig{
			Backend: DefaultStoreBackend,
		},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    DefaultBackupMode,
		},
		Format: "text",
	}
}

// InjectStylesEnabled reports whether styles are injected; unset means yes.
func (c *Config) InjectStylesEnabled() bool {
	return c.InjectStyles == nil || *c.InjectStyles
}

// BackupsEnabled reports whether backups are taken; unset means yes.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled == nil || *c.Backups.Enabled
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
