// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Block formats
	Heading   lipgloss.Style
	Quote     lipgloss.Style
	CodeBlock lipgloss.Style

	// Inline formats
	Strong         lipgloss.Style
	Emphasis       lipgloss.Style
	StrongEmphasis lipgloss.Style
	Strike         lipgloss.Style
	Code           lipgloss.Style
	Link           lipgloss.Style
	Embed          lipgloss.Style

	// Document gutter
	LineNumber lipgloss.Style
	FormatTag  lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style
	TableBlock     lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Quote:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		CodeBlock: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		Strong:         lipgloss.NewStyle().Bold(true),
		Emphasis:       lipgloss.NewStyle().Italic(true),
		StrongEmphasis: lipgloss.NewStyle().Bold(true).Italic(true),
		Strike:         lipgloss.NewStyle().Strikethrough(true),
		Code:           lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Link:           lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Embed:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		FormatTag:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableBlock:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Heading:        plain,
		Quote:          plain,
		CodeBlock:      plain,
		Strong:         plain,
		Emphasis:       plain,
		StrongEmphasis: plain,
		Strike:         plain,
		Code:           plain,
		Link:           plain,
		Embed:          plain,
		LineNumber:     plain,
		FormatTag:      plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		TableHeader:    plain,
		TableLegend:    plain,
		TableSeparator: plain,
		TableBlock:     plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// else a default width.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
