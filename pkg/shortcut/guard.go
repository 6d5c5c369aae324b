package shortcut

import (
	"slices"

	"github.com/yaklabco/mdshortcut/pkg/delta"
)

// tableDenied lists the block-structural patterns that never fire inside a
// table cell.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tableDenied = []string{
	NameHeader,
	NameBlockquote,
	NameCodeBlock,
	NameHR,
	NamePlusUL,
	NameAsteriskUL,
}

// Allow reports whether pattern may fire on a line with the given formats.
// Nothing fires inside a code block; block-structural patterns do not fire
// inside table cells.
func Allow(formats delta.Attributes, pattern string) bool {
	if formats.Truthy(delta.AttrCodeBlock) {
		return false
	}
	if formats.Truthy(delta.AttrTableCellLine) && slices.Contains(tableDenied, pattern) {
		return false
	}
	return true
}

// Find returns the first pattern, in order, whose expression matches text and
// which Allow permits under formats, along with its byte submatch indices.
func Find(patterns []Pattern, formats delta.Attributes, text string) (Pattern, []int, bool) {
	for _, p := range patterns {
		loc := p.Expr.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if !Allow(formats, p.Name) {
			continue
		}
		return p, loc, true
	}
	return Pattern{}, nil, false
}
