package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/config"
)

// envVarPrefix is the prefix for all mdshortcut environment variables.
const envVarPrefix = "MDSHORTCUT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":    {field: "format", typ: envTypeString, description: "Output format: markdown, html, json, or text"},
	"LOG_LEVEL": {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"OUTPUT":    {field: "output", typ: envTypeString, description: "Replay output file (default stdout)"},
	"DEBUG":     {field: "debug", typ: envTypeBool, description: "Force debug logging: true or false"},
	"IGNORE":    {field: "shortcuts.ignore", typ: envTypeSlice, description: "Comma-separated pattern names to switch off"},
	"DISABLE":   {field: "keyboard.disable", typ: envTypeSlice, description: "Comma-separated binding names to switch off"},
	"LANGUAGES": {field: "highlight.languages", typ: envTypeSlice, description: "Comma-separated highlight languages"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDSHORTCUT_ (e.g., MDSHORTCUT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

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
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace. The result is never nil, so
// MDSHORTCUT_LANGUAGES="," switches highlighting off.
func parseSliceValue(value string) []string {
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
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "log_level":
		cfg.LogLevel = value
	case "output":
		cfg.Output = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "debug":
		cfg.Debug = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "shortcuts.ignore":
		cfg.Shortcuts.Ignore = value
	case "keyboard.disable":
		cfg.Keyboard.Disable = value
	case "highlight.languages":
		cfg.Highlight.Languages = value
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
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
