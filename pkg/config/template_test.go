package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdshortcut/pkg/config"
)

func templateOptions() config.TemplateOptions {
	return config.TemplateOptions{
		Patterns: []config.PatternInfo{
			{Name: "header", Description: "# at line start makes a heading"},
			{Name: "bold", Description: "**text** becomes bold"},
		},
		Bindings:         []string{"list autofill", "save"},
		Languages:        []string{"bash", "go", "python"},
		DefaultLanguages: []string{"bash", "python"},
	}
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FormatMarkdown, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Highlight.Languages)
}

func TestGenerateTemplate_Full(t *testing.T) {
	t.Parallel()

	opts := templateOptions()
	opts.Full = true

	data, err := config.GenerateTemplate(opts)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "#   header: # at line start makes a heading")
	assert.Contains(t, out, "#   bold: **text** becomes bold")
	assert.Contains(t, out, "#   list autofill")
	assert.Contains(t, out, "# Available: bash, go, python")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "python"}, cfg.Highlight.Languages)
	assert.Empty(t, cfg.Shortcuts.Ignore)
	assert.Empty(t, cfg.Keyboard.Disable)
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	opts := templateOptions()
	opts.Format = "json"

	data, err := config.GenerateTemplate(opts)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "markdown", doc["format"])
	assert.Equal(t, map[string]any{"languages": []any{"bash", "python"}}, doc["highlight"])
}
