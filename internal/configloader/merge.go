package configloader

import "github.com/yaklabco/mdshortcut/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// false is the zero value, so a later layer can turn debug on but not off.
	if override.Debug {
		result.Debug = true
	}

	if override.Shortcuts.Ignore != nil {
		result.Shortcuts.Ignore = override.Shortcuts.Ignore
	}
	if override.Keyboard.Disable != nil {
		result.Keyboard.Disable = override.Keyboard.Disable
	}
	if override.Highlight.Languages != nil {
		result.Highlight.Languages = override.Highlight.Languages
	}

	return result
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
