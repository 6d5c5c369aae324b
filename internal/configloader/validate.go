package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/config"
	"github.com/yaklabco/mdshortcut/pkg/highlight"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "shortcuts.ignore[0]").
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

	// Warnings are non-fatal issues (e.g., unknown pattern names).
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

// knownLogLevels lists valid log level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks a configuration for errors and warnings. Bad formats and
// log levels are errors; names the engine would skip are warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: markdown, html, json, text", cfg.Format),
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	for i, name := range cfg.Shortcuts.Ignore {
		if _, ok := ResolvePattern(name); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("shortcuts.ignore[%d]", i),
				Value:   name,
				Message: fmt.Sprintf("unknown pattern %q; it will be ignored", name),
			})
		}
	}

	for i, name := range cfg.Keyboard.Disable {
		if _, ok := ResolveBinding(name); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("keyboard.disable[%d]", i),
				Value:   name,
				Message: fmt.Sprintf("unknown binding %q; it will be ignored", name),
			})
		}
	}

	available := highlight.Available()
	for i, name := range cfg.Highlight.Languages {
		if !slices.Contains(available, strings.ToLower(strings.TrimSpace(name))) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("highlight.languages[%d]", i),
				Value:   name,
				Message: fmt.Sprintf("unknown language %q; it will be ignored", name),
			})
		}
	}

	return result
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

// IsValidLogLevel returns true if the log level string is valid.
func IsValidLogLevel(level string) bool {
	return knownLogLevels[strings.ToLower(level)]
}
