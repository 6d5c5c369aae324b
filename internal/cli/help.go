// Package cli provides the Cobra command structure for mdshortcut.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdshortcut/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style

	// Token styles replay script tokens such as <bs>.
	Token lipgloss.Style

	// Dim is used for flag value types.
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Token:      plain,
			Dim:        plain,
		}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Token:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// The commands carry their examples in Long, so there is no Examples
// section. Script Tokens is filled from the "scriptTokens" annotation.
const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- with index .Annotations "scriptTokens"}}

{{ heading "Script Tokens:" }}
{{ tokens . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// HelpFormatter renders styled help for Cobra commands. Color is resolved
// when help is printed, so --color and the command's writer are honoured.
type HelpFormatter struct {
	colorMode *string
}

// NewHelpFormatter creates a help formatter reading the color mode from
// colorMode each time help is rendered.
func NewHelpFormatter(colorMode *string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

func (h *HelpFormatter) styles(w io.Writer) *HelpStyles {
	mode := "auto"
	if h.colorMode != nil {
		mode = *h.colorMode
	}
	return NewHelpStyles(pretty.IsColorEnabled(mode, w))
}

// flagUsager is satisfied by *pflag.FlagSet.
type flagUsager interface {
	FlagUsages() string
}

func templateFuncs(styles *HelpStyles) template.FuncMap {
	return template.FuncMap{
		"command":    styles.Command.Render,
		"heading":    styles.Heading.Render,
		"subcommand": styles.Subcommand.Render,
		"dim":        styles.Dim.Render,
		"tokens": func(table string) string {
			return formatTokens(styles, table)
		},
		"flags": func(fs flagUsager) string {
			return formatFlags(styles, fs.FlagUsages())
		},
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

func (h *HelpFormatter) render(name, text string, command *cobra.Command) error {
	w := command.OutOrStdout()
	tmpl, err := template.New(name).Funcs(templateFuncs(h.styles(w))).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(w, command); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// ApplyToCommand installs the styled help and usage functions on cmd. Cobra
// hands them down to every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// formatTokens lays out "token<TAB>key" rows as an aligned list.
func formatTokens(styles *HelpStyles, table string) string {
	rows := strings.Split(table, "\n")
	width := 0
	for _, row := range rows {
		token, _, _ := strings.Cut(row, "\t")
		width = max(width, len(token))
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		token, key, _ := strings.Cut(row, "\t")
		lines = append(lines, "  "+styles.Token.Render(rpad(token, width))+"   "+key)
	}
	return strings.Join(lines, "\n")
}

// formatFlags styles pflag usage output. Each line is "  -f, --flag type"
// followed by two or more spaces and the description.
func formatFlags(styles *HelpStyles, usages string) string {
	usages = strings.TrimSuffix(usages, "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = formatFlagLine(styles, line)
	}
	return strings.Join(lines, "\n")
}

func formatFlagLine(styles *HelpStyles, line string) string {
	trimmed := strings.TrimLeft(line, " ")
	gap := strings.Index(trimmed, "  ")
	if gap < 0 {
		return line
	}
	indent := line[:len(line)-len(trimmed)]
	desc := strings.TrimLeft(trimmed[gap:], " ")

	fields := strings.Fields(trimmed[:gap])
	for i, field := range fields {
		name, comma := strings.CutSuffix(field, ",")
		switch {
		case !strings.HasPrefix(name, "-"):
			fields[i] = styles.Dim.Render(name)
		case comma:
			fields[i] = styles.Flag.Render(name) + ","
		default:
			fields[i] = styles.Flag.Render(name)
		}
	}
	return indent + strings.Join(fields, " ") + "   " + desc
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
