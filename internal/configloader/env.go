package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/regexmark/pkg/config"
)

// envVarPrefix is the prefix for all regexmark environment variables.
const envVarPrefix = "REGEXMARK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DEFAULT_PATTERN":      {"default_pattern", envTypeString, "Pattern stored on first run"},
	"DEFAULT_FLAGS":        {"default_flags", envTypeString, "Flags stored on first run, any of gimu"},
	"MAX_MATCHES_PER_NODE": {"max_matches_per_node", envTypeInt, "Matches collected from one text node"},
	"SKIP_TAGS":            {"skip_tags", envTypeSlice, "Comma-separated elements never marked"},
	"INJECT_STYLES":        {"inject_styles", envTypeBool, "Add the marker stylesheet: true or false"},
	"MATCH_TIMEOUT":        {"match_timeout", envTypeDuration, "Bound on one match attempt, e.g. 500ms"},
	"FLAVOR":               {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"STORE_BACKEND":        {"store.backend", envTypeString, "State store: file or sqlite"},
	"STORE_PATH":           {"store.path", envTypeString, "State file path"},
	"BACKUPS_ENABLED":      {"backups.enabled", envTypeBool, "Back up pages before rewriting: true or false"},
	"BACKUPS_MODE":         {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"FORMAT":               {"format", envTypeString, "Output format: text or json"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with REGEXMARK_ (e.g., REGEXMARK_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "default_pattern":
		cfg.DefaultPattern = value
	case "default_flags":
		cfg.DefaultFlags = value
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "store.backend":
		cfg.Store.Backend = value
	case "store.path":
		cfg.Store.Path = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "inject_styles":
		cfg.InjectStyles = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_matches_per_node":
		cfg.MaxMatchesPerNode = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "match_timeout":
		cfg.MatchTimeout = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "skip_tags":
		cfg.SkipTags = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
