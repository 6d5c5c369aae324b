// Package config defines core configuration types for mdshortcut.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies how a replayed document is written out.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
	FormatJSON     OutputFormat = "json"
	FormatText     OutputFormat = "text"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatMarkdown, FormatHTML, FormatJSON, FormatText}
}

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatJSON, FormatText:
		return true
	default:
		return false
	}
}

// ShortcutsConfig controls the markdown shortcut engine.
type ShortcutsConfig struct {
	// Ignore lists pattern names that never fire.
	Ignore []string `yaml:"ignore"`
}

// KeyboardConfig controls the keymap consulted before default key actions.
type KeyboardConfig struct {
	// Disable lists binding names to switch off.
	Disable []string `yaml:"disable"`
}

// HighlightConfig controls code-block language labelling on export.
type HighlightConfig struct {
	// Languages is the enabled language set. Nil means the built-in defaults;
	// an empty list switches labelling off.
	Languages []string `yaml:"languages"`
}

// Config is the root configuration structure for mdshortcut.
type Config struct {
	Shortcuts ShortcutsConfig `yaml:"shortcuts"`
	Keyboard  KeyboardConfig  `yaml:"keyboard"`
	Highlight HighlightConfig `yaml:"highlight"`

	// Format is the default output format for replay.
	Format OutputFormat `yaml:"format"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Output is the destination file for replay output; empty means stdout.
	Output string `yaml:"-"`

	// Debug forces debug logging regardless of LogLevel.
	Debug bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:   FormatMarkdown,
		LogLevel: "info",
	}
}
