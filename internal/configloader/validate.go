package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/regexmark/pkg/config"
	"github.com/yaklabco/regexmark/pkg/pattern"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "classes.current").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// maxMatchesWarnThreshold is the per-node cap above which a warning is issued.
const maxMatchesWarnThreshold = 10000

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownFlavors      = map[config.Flavor]bool{config.FlavorCommonMark: true, config.FlavorGFM: true}
	knownFormats      = map[string]bool{"text": true, "json": true}
	knownBackends     = map[string]bool{"file": true, "sqlite": true}
	knownBackupModes  = map[string]bool{"sidecar": true, "none": true}
	classNamePattern  = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)
	tagNamePattern    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
	pageRootTags      = []string{"html", "body"}
)

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validatePattern(cfg, result)
	validateEngine(cfg, result)

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.errorf("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}
	if cfg.Store.Backend != "" && !knownBackends[cfg.Store.Backend] {
		result.errorf("store.backend", cfg.Store.Backend, "invalid store backend %q; must be one of: file, sqlite", cfg.Store.Backend)
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.errorf("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	return result
}

// validatePattern checks the first-run pattern and flags.
func validatePattern(cfg *config.Config, result *ValidationResult) {
	if cfg.DefaultFlags != "" {
		if _, err := pattern.ParseFlags(cfg.DefaultFlags); err != nil {
			result.errorf("default_flags", cfg.DefaultFlags, "%v", err)
			return
		}
	}

	if cfg.DefaultPattern != "" {
		opts, _ := pattern.ParseFlags(cfg.DefaultFlags)
		if _, err := pattern.Compile(cfg.DefaultPattern, opts); err != nil {
			result.errorf("default_pattern", cfg.DefaultPattern, "%v", err)
		}
	}
}

// validateEngine checks the marking settings.
func validateEngine(cfg *config.Config, result *ValidationResult) {
	switch {
	case cfg.MaxMatchesPerNode < 0:
		result.errorf("max_matches_per_node", cfg.MaxMatchesPerNode, "must be >= 0 (0 means the default)")
	case cfg.MaxMatchesPerNode > maxMatchesWarnThreshold:
		result.warnf("max_matches_per_node", cfg.MaxMatchesPerNode, "large per-node cap may produce very large pages")
	}

	if cfg.MatchTimeout < 0 {
		result.errorf("match_timeout", cfg.MatchTimeout, "must be >= 0 (0 means unbounded)")
	}

	for field, class := range map[string]string{
		"classes.highlighted": cfg.Classes.Highlighted,
		"classes.current":     cfg.Classes.Current,
	} {
		if class != "" && !classNamePattern.MatchString(class) {
			result.errorf(field, class, "invalid class name %q", class)
		}
	}
	if cfg.Classes.Highlighted != "" && cfg.Classes.Highlighted == cfg.Classes.Current {
		result.errorf("classes", cfg.Classes.Current, "highlighted and current classes must differ")
	}

	for i, tag := range cfg.SkipTags {
		if !tagNamePattern.MatchString(tag) {
			result.errorf(fmt.Sprintf("skip_tags[%d]", i), tag, "invalid tag name %q", tag)
		}
	}
	for _, tag := range pageRootTags {
		if slices.ContainsFunc(cfg.SkipTags, func(s string) bool { return strings.EqualFold(s, tag) }) {
			result.warnf("skip_tags", tag, "skipping %s skips the whole page; nothing will be marked", tag)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f string) bool {
	return knownFormats[f]
}
