package configloader

import "github.com/yaklabco/regexmark/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is set
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.DefaultPattern != "" {
		result.DefaultPattern = override.DefaultPattern
	}
	if override.DefaultFlags != "" {
		result.DefaultFlags = override.DefaultFlags
	}
	if override.MaxMatchesPerNode != 0 {
		result.MaxMatchesPerNode = override.MaxMatchesPerNode
	}
	if override.MatchTimeout != 0 {
		result.MatchTimeout = override.MatchTimeout
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	if override.Classes.Highlighted != "" {
		result.Classes.Highlighted = override.Classes.Highlighted
	}
	if override.Classes.Current != "" {
		result.Classes.Current = override.Classes.Current
	}

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}

	if override.InjectStyles != nil {
		result.InjectStyles = config.Bool(*override.InjectStyles)
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.SkipTags != nil {
		result.SkipTags = append([]string(nil), override.SkipTags...)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
