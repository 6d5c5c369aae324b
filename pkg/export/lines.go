// Package export serializes document contents to Markdown, HTML, and JSON.
package export

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/delta"
)

// segment is a run of text with one set of inline formats, or one embed.
type segment struct {
	text  string
	embed *delta.Embed
	attrs delta.Attributes
}

// line is one document line: its segments and the block formats carried by
// its newline.
type line struct {
	segs    []segment
	formats delta.Attributes
}

func (l line) empty() bool {
	return len(l.segs) == 0
}

// plain returns the line text with embeds dropped.
func (l line) plain() string {
	var b strings.Builder
	for _, s := range l.segs {
		b.WriteString(s.text)
	}
	return b.String()
}

// onlyEmbed returns the embed when it is the line's sole content.
func (l line) onlyEmbed() (*delta.Embed, bool) {
	if len(l.segs) != 1 || l.segs[0].embed == nil {
		return nil, false
	}
	return l.segs[0].embed, true
}

// splitLines breaks insert-only contents into lines. Text after the last
// newline forms a final line without block formats.
func splitLines(contents *delta.Delta) ([]line, error) {
	var (
		lines []line
		cur   line
	)

	for i, op := range contents.Ops {
		switch {
		case op.Embed != nil:
			embed := *op.Embed
			cur.segs = append(cur.segs, segment{embed: &embed, attrs: op.Attributes.Inline()})
		case op.Insert != "":
			parts := strings.Split(op.Insert, "\n")
			for j, part := range parts {
				if part != "" {
					cur.segs = append(cur.segs, segment{text: part, attrs: op.Attributes.Inline()})
				}
				if j < len(parts)-1 {
					cur.formats = op.Attributes.Block()
					lines = append(lines, cur)
					cur = line{}
				}
			}
		default:
			return nil, fmt.Errorf("op %d: contents must be insert-only", i)
		}
	}

	if !cur.empty() {
		lines = append(lines, cur)
	}
	return lines, nil
}
