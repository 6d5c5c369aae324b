package pretty

import (
	"fmt"
	"strings"
)

// Table formatting constants.
const (
	blockSymbol       = "B"
	tablePadding      = 2
	tableColumnCount  = 4 // NAME, EXPRESSION, DESCRIPTION, BLOCK
	blockColumnWidth  = 3
	minNameWidth      = 8
	minExprWidth      = 12
	minDescWidth      = 30
	heavySeparator    = "="
	patternTableTitle = "Patterns are tried top to bottom; the first allowed match wins."
)

// PatternRow is one row of the pattern table.
type PatternRow struct {
	Name        string
	Expression  string
	Description string

	// Block marks patterns that set a block format and are refused in table cells.
	Block bool

	// Ignored marks patterns switched off by configuration.
	Ignored bool
}

// TableFormatter formats the pattern table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	name int
	expr int
	desc int
}

func (w columnWidths) total() int {
	return w.name + w.expr + w.desc + tablePadding*tableColumnCount + blockColumnWidth
}

// FormatPatterns renders rows as a table with a header, separators and a legend.
func (t *TableFormatter) FormatPatterns(rows []PatternRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.styles.Dim.Render(patternTableTitle))
	builder.WriteString("\n")
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend(rows))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []PatternRow) columnWidths {
	widths := columnWidths{name: minNameWidth, expr: minExprWidth, desc: minDescWidth}

	for _, row := range rows {
		widths.name = max(widths.name, len(row.Name))
		widths.expr = max(widths.expr, len(row.Expression))
		widths.desc = max(widths.desc, len(row.Description))
	}

	// Shrink the description first; it reads fine truncated.
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.desc = max(minDescWidth, widths.desc-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		widths.name, "NAME",
		widths.expr, "EXPRESSION",
		widths.desc, "DESCRIPTION",
		blockSymbol,
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, widths.total()))
}

func (t *TableFormatter) formatRow(row PatternRow, widths columnWidths) string {
	block := " "
	if row.Block {
		block = t.styles.TableBlock.Render(blockSymbol)
	}

	content := fmt.Sprintf(" %-*s  %-*s  %-*s  ",
		widths.name, truncateString(row.Name, widths.name),
		widths.expr, truncateString(row.Expression, widths.expr),
		widths.desc, truncateString(row.Description, widths.desc),
	)

	if row.Ignored {
		return t.styles.Dim.Render(content) + block
	}
	return content + block
}

func (t *TableFormatter) formatLegend(rows []PatternRow) string {
	ignored := 0
	for _, row := range rows {
		if row.Ignored {
			ignored++
		}
	}

	legend := fmt.Sprintf(" %d patterns, %d ignored. %s = block format, refused inside table cells",
		len(rows), ignored, blockSymbol)
	return t.styles.TableLegend.Render(legend)
}

// truncateString shortens str to maxLen bytes, ending in "..." when cut.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}
