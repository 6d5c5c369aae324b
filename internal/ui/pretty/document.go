package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdshortcut/pkg/delta"
)

const (
	gutterNumberWidth = 3
	gutterTagWidth    = 8
	gutterSeparator   = " | "
	ellipsis          = "..."
	hrGlyph           = "----------"
)

// DocumentView renders document contents for a terminal: one row per line,
// with a gutter holding the line number and the line's block format.
type DocumentView struct {
	styles *Styles
	width  int
}

// NewDocumentView creates a view that wraps nothing and truncates rows to width.
func NewDocumentView(styles *Styles, width int) *DocumentView {
	if width <= 0 {
		width = defaultTermWidth
	}
	return &DocumentView{styles: styles, width: width}
}

type run struct {
	text  string
	embed *delta.Embed
	attrs delta.Attributes
}

type viewLine struct {
	runs    []run
	formats delta.Attributes
}

// Render returns the view of contents, one row per document line.
func (v *DocumentView) Render(contents *delta.Delta) (string, error) {
	lines, err := collectLines(contents)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for i, l := range lines {
		builder.WriteString(v.renderLine(i+1, l))
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func collectLines(contents *delta.Delta) ([]viewLine, error) {
	var (
		lines []viewLine
		cur   viewLine
	)

	for i, op := range contents.Ops {
		if !op.IsInsert() {
			return nil, fmt.Errorf("op %d: view needs insert-only contents", i)
		}
		if op.Embed != nil {
			embed := *op.Embed
			cur.runs = append(cur.runs, run{embed: &embed})
			continue
		}

		parts := strings.Split(op.Insert, "\n")
		for j, part := range parts {
			if part != "" {
				cur.runs = append(cur.runs, run{text: part, attrs: op.Attributes.Inline()})
			}
			if j < len(parts)-1 {
				cur.formats = op.Attributes.Block()
				lines = append(lines, cur)
				cur = viewLine{}
			}
		}
	}
	if len(cur.runs) > 0 {
		lines = append(lines, cur)
	}

	return lines, nil
}

func (v *DocumentView) renderLine(n int, l viewLine) string {
	number := v.styles.LineNumber.Render(fmt.Sprintf("%*d", gutterNumberWidth, n))
	tag := v.styles.FormatTag.Render(fmt.Sprintf("%-*s", gutterTagWidth, blockTag(l.formats)))
	gutter := number + " " + tag + v.styles.Dim.Render(gutterSeparator)

	budget := v.width - gutterNumberWidth - 1 - gutterTagWidth - len(gutterSeparator)
	body := v.renderRuns(truncateRuns(l.runs, budget))

	switch {
	case l.formats.Truthy(delta.AttrHeader):
		body = v.styles.Heading.Render(body)
	case l.formats.Truthy(delta.AttrBlockquote):
		body = v.styles.Quote.Render(body)
	case l.formats.Truthy(delta.AttrCodeBlock):
		body = v.styles.CodeBlock.Render(body)
	}
	return gutter + body
}

func (v *DocumentView) renderRuns(runs []run) string {
	var builder strings.Builder
	for _, r := range runs {
		if r.embed != nil {
			builder.WriteString(v.styles.Embed.Render(embedText(r.embed)))
			continue
		}
		builder.WriteString(v.inlineStyle(r.attrs).Render(r.text))
	}
	return builder.String()
}

func (v *DocumentView) inlineStyle(attrs delta.Attributes) lipgloss.Style {
	bold := attrs.Truthy(delta.AttrBold)
	italic := attrs.Truthy(delta.AttrItalic)

	switch {
	case attrs.Truthy(delta.AttrCode):
		return v.styles.Code
	case attrs.Truthy(delta.AttrLink):
		return v.styles.Link
	case bold && italic:
		return v.styles.StrongEmphasis
	case bold:
		return v.styles.Strong
	case italic:
		return v.styles.Emphasis
	case attrs.Truthy(delta.AttrStrike):
		return v.styles.Strike
	default:
		return lipgloss.NewStyle()
	}
}

func embedText(e *delta.Embed) string {
	switch e.Kind {
	case delta.EmbedHR:
		return hrGlyph
	case delta.EmbedImage:
		return fmt.Sprintf("[image %v]", e.Value)
	default:
		return "[" + e.Kind + "]"
	}
}

// blockTag names a line's block formats for the gutter, e.g. "h2" or
// "ol+cell". Keys come sorted, so table-cell-line always tags last.
func blockTag(formats delta.Attributes) string {
	var tags []string
	for _, name := range formats.Keys() {
		if !formats.Truthy(name) {
			continue
		}
		switch name {
		case delta.AttrHeader:
			tags = append(tags, fmt.Sprintf("h%v", formats[name]))
		case delta.AttrBlockquote:
			tags = append(tags, "quote")
		case delta.AttrCodeBlock:
			tags = append(tags, "code")
		case delta.AttrList:
			if strings.HasPrefix(fmt.Sprint(formats[name]), "ordered") {
				tags = append(tags, "ol")
			} else {
				tags = append(tags, "ul")
			}
		case delta.AttrTableCellLine:
			tags = append(tags, "cell")
		default:
			tags = append(tags, name)
		}
	}
	return strings.Join(tags, "+")
}

// truncateRuns cuts runs to budget runes, marking the cut with an ellipsis.
func truncateRuns(runs []run, budget int) []run {
	total := 0
	for _, r := range runs {
		total += runLen(r)
	}
	if total <= budget || budget <= len(ellipsis) {
		return runs
	}

	keep := budget - len(ellipsis)
	out := make([]run, 0, len(runs))
	for _, r := range runs {
		n := runLen(r)
		if n <= keep {
			out = append(out, r)
			keep -= n
			continue
		}
		if r.embed == nil && keep > 0 {
			cut := r
			cut.text = string([]rune(r.text)[:keep])
			out = append(out, cut)
		}
		break
	}
	return append(out, run{text: ellipsis})
}

func runLen(r run) int {
	if r.embed != nil {
		return utf8.RuneCountInString(embedText(r.embed))
	}
	return utf8.RuneCountInString(r.text)
}
