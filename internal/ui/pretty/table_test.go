package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdshortcut/internal/ui/pretty"
)

func TestFormatPatterns(t *testing.T) {
	t.Parallel()

	rows := []pretty.PatternRow{
		{Name: "header", Expression: `^(#){1,6}\s`, Description: "heading", Block: true},
		{Name: "bold", Expression: `\*\*(.+?)\*\*`, Description: "bold text", Ignored: true},
	}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 100).FormatPatterns(rows)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[1], "NAME")
	assert.Contains(t, lines[1], "EXPRESSION")
	assert.Equal(t, strings.Repeat("=", len(lines[2])), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], " header  "))
	assert.True(t, strings.HasSuffix(lines[3], "B"))
	assert.True(t, strings.HasSuffix(lines[4], " "), "no block marker")
	assert.Contains(t, lines[6], "2 patterns, 1 ignored")
}

func TestFormatPatterns_ShrinksDescription(t *testing.T) {
	t.Parallel()

	rows := []pretty.PatternRow{{
		Name:        "link",
		Expression:  `\[(.+?)\]\((.+?)\)`,
		Description: strings.Repeat("long words ", 20),
	}}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 80).FormatPatterns(rows)
	for _, line := range strings.Split(out, "\n")[1:4] {
		assert.LessOrEqual(t, len(line), 80, line)
	}
	assert.Contains(t, out, "...")
}

func TestFormatPatterns_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatPatterns(nil))
}
