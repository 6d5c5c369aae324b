package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/highlight"
)

// Options controls serialization.
type Options struct {
	// Languages labels fenced code blocks with their detected language. Nil
	// leaves fences unlabelled.
	Languages *highlight.Registry
}

//nolint:gochecknoglobals // Compiled once.
var orderedMarker = regexp.MustCompile(`^(\d+)\.`)

// Markdown renders insert-only contents as Markdown. Consecutive list,
// blockquote, and code-block lines form one block; blocks are separated by a
// blank line and empty plain lines are dropped.
func Markdown(contents *delta.Delta, opts Options) (string, error) {
	lines, err := splitLines(contents)
	if err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}

	var blocks []string
	for i := 0; i < len(lines); {
		l := lines[i]
		var (
			block string
			next  int
		)

		switch {
		case l.formats.Truthy(delta.AttrCodeBlock):
			block, next = renderCodeBlock(lines, i, opts)
		case l.formats.Truthy(delta.AttrList):
			block, next = renderList(lines, i)
		case l.formats.Truthy(delta.AttrBlockquote):
			block, next = renderQuote(lines, i)
		case l.formats.Truthy(delta.AttrHeader):
			block, next = strings.Repeat("#", headerLevel(l.formats[delta.AttrHeader]))+" "+renderInline(l.segs), i+1
		default:
			block, next = renderParagraph(l), i+1
		}

		if block != "" {
			blocks = append(blocks, block)
		}
		i = next
	}

	if len(blocks) == 0 {
		return "", nil
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

func renderParagraph(l line) string {
	if embed, ok := l.onlyEmbed(); ok && embed.Kind == delta.EmbedHR {
		return "---"
	}
	text := renderInline(l.segs)
	if text == "" {
		return ""
	}
	return escapeLeading(text)
}

func renderCodeBlock(lines []line, i int, opts Options) (string, int) {
	var code []string
	for ; i < len(lines) && lines[i].formats.Truthy(delta.AttrCodeBlock); i++ {
		code = append(code, lines[i].plain())
	}
	body := strings.Join(code, "\n")

	lang := ""
	if opts.Languages != nil {
		lang = opts.Languages.Label([]byte(body))
	}

	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	return fence + lang + "\n" + body + "\n" + fence, i
}

func renderList(lines []line, i int) (string, int) {
	kind, start := listKind(lines[i].formats[delta.AttrList])

	var items []string
	n := start
	for ; i < len(lines) && lines[i].formats.Truthy(delta.AttrList); i++ {
		if k, _ := listKind(lines[i].formats[delta.AttrList]); k != kind {
			break
		}
		marker := "-"
		if kind == "ordered" {
			marker = strconv.Itoa(n) + "."
			n++
		}
		items = append(items, marker+" "+renderInline(lines[i].segs))
	}
	return strings.Join(items, "\n"), i
}

// listKind splits a list value into "ordered" or "bullet" and, for ordered
// lists, the starting number ("ordered-12" starts at 12).
func listKind(v any) (string, int) {
	s := fmt.Sprint(v)
	if s == "ordered" {
		return "ordered", 1
	}
	if rest, ok := strings.CutPrefix(s, "ordered-"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return "ordered", n
		}
		return "ordered", 1
	}
	return "bullet", 0
}

func renderQuote(lines []line, i int) (string, int) {
	var quoted []string
	for ; i < len(lines) && lines[i].formats.Truthy(delta.AttrBlockquote); i++ {
		quoted = append(quoted, strings.TrimRight("> "+renderInline(lines[i].segs), " "))
	}
	return strings.Join(quoted, "\n"), i
}

func headerLevel(v any) int {
	var level int
	switch val := v.(type) {
	case int:
		level = val
	case float64:
		level = int(val)
	case string:
		level, _ = strconv.Atoi(val)
	}
	return min(max(level, 1), 6)
}

func renderInline(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.embed != nil {
			b.WriteString(renderEmbed(s.embed))
			continue
		}
		b.WriteString(renderText(s.text, s.attrs))
	}
	return b.String()
}

func renderEmbed(e *delta.Embed) string {
	switch e.Kind {
	case delta.EmbedImage:
		return "![](" + fmt.Sprint(e.Value) + ")"
	case delta.EmbedHR:
		return "---"
	default:
		return ""
	}
}

func renderText(text string, attrs delta.Attributes) string {
	var out string
	if attrs.Truthy(delta.AttrCode) {
		fence := "`"
		if strings.Contains(text, "`") {
			fence = "``"
			text = " " + text + " "
		}
		out = fence + text + fence
	} else {
		out = escapeText(text)
	}

	bold, italic := attrs.Truthy(delta.AttrBold), attrs.Truthy(delta.AttrItalic)
	switch {
	case bold && italic:
		out = "***" + out + "***"
	case bold:
		out = "**" + out + "**"
	case italic:
		out = "_" + out + "_"
	}
	if attrs.Truthy(delta.AttrStrike) {
		out = "~~" + out + "~~"
	}
	if attrs.Truthy(delta.AttrLink) {
		out = "[" + out + "](" + fmt.Sprint(attrs[delta.AttrLink]) + ")"
	}
	return out
}

//nolint:gochecknoglobals // Compiled once.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"~", `\~`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeLeading stops a paragraph from being read as a block construct.
func escapeLeading(s string) string {
	if loc := orderedMarker.FindStringIndex(s); loc != nil {
		return s[:loc[1]-1] + `\.` + s[loc[1]:]
	}
	if strings.ContainsAny(s[:1], "#>-+") {
		return `\` + s
	}
	return s
}
