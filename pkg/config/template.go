package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every pattern, binding and language.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Patterns lists the shortcut patterns to document.
	Patterns []PatternInfo

	// Bindings lists the keyboard binding names to document.
	Bindings []string

	// Languages lists the highlight languages that can be enabled.
	Languages []string

	// DefaultLanguages is the language set used when none is configured.
	DefaultLanguages []string
}

// PatternInfo contains pattern metadata for template generation.
// The shortcut package fills it in so config stays free of that import.
type PatternInfo struct {
	Name        string
	Description string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Output format for replay: markdown, html, json, or text
format: markdown

# Log level: debug, info, warn, or error
log_level: info

# Shortcut patterns to switch off
# shortcuts:
#   ignore:
#     - link
#     - image

# Keyboard bindings to switch off
# keyboard:
#   disable:
#     - save

# Languages used to label fenced code blocks on export
# highlight:
#   languages:
#     - go
#     - python
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with everything documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# mdshortcut configuration - Full Template
# See: https://github.com/yaklabco/mdshortcut
#
# This template lists every shortcut pattern, keyboard binding and
# highlight language. Uncomment and modify settings as needed.

# Output format for replay: markdown, html, json, or text
format: markdown

# Log level: debug, info, warn, or error
log_level: info

shortcuts:
  # Patterns are tried in this order; the first match wins.
`)
	for _, p := range opts.Patterns {
		fmt.Fprintf(&buf, "  #   %s: %s\n", p.Name, wrapComment(p.Description, commentWrapWidth))
	}
	buf.WriteString("  ignore: []\n\nkeyboard:\n  # Bindings:\n")
	for _, name := range opts.Bindings {
		fmt.Fprintf(&buf, "  #   %s\n", name)
	}
	buf.WriteString("  disable: []\n\nhighlight:\n")
	if len(opts.Languages) > 0 {
		buf.WriteString("  # Available: ")
		buf.WriteString(wrapComment(strings.Join(opts.Languages, ", "), commentWrapWidth))
		buf.WriteByte('\n')
	}
	buf.WriteString("  languages:\n")
	for _, name := range opts.DefaultLanguages {
		fmt.Fprintf(&buf, "    - %s\n", name)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  #     ")
}

// templateToJSON renders the default configuration as JSON. JSON has no
// comments, so the full and minimal templates are the same document.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	defaults := NewConfig()

	languages := opts.DefaultLanguages
	if languages == nil {
		languages = []string{}
	}

	cfg := map[string]any{
		"format":    defaults.Format,
		"log_level": defaults.LogLevel,
		"shortcuts": map[string]any{"ignore": []string{}},
		"keyboard":  map[string]any{"disable": []string{}},
		"highlight": map[string]any{"languages": languages},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdshortcut configuration
# See: https://github.com/yaklabco/mdshortcut`
}
