package delta

import (
	"maps"
	"slices"
)

// Attribute names understood by the document model.
const (
	AttrBold          = "bold"
	AttrItalic        = "italic"
	AttrStrike        = "strike"
	AttrCode          = "code"
	AttrLink          = "link"
	AttrHeader        = "header"
	AttrBlockquote    = "blockquote"
	AttrCodeBlock     = "code-block"
	AttrList          = "list"
	AttrTableCellLine = "table-cell-line"
)

// Embed kinds.
const (
	EmbedImage = "image"
	EmbedHR    = "hr"
)

// exclusiveBlockAttrs are the block formats of which a line carries at most one.
//
//nolint:gochecknoglobals // Read-only lookup table.
var exclusiveBlockAttrs = []string{AttrHeader, AttrBlockquote, AttrCodeBlock, AttrList}

// IsBlock reports whether name is a line-level format.
func IsBlock(name string) bool {
	return slices.Contains(exclusiveBlockAttrs, name) || name == AttrTableCellLine
}

// ExclusiveBlocks returns the block formats that replace each other on a line.
func ExclusiveBlocks() []string {
	return slices.Clone(exclusiveBlockAttrs)
}

// Attributes maps format names to values. A nil or false value means "unset".
type Attributes map[string]any

// Clone returns a shallow copy. Cloning nil returns nil.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Truthy reports whether name is set to a value other than nil, false, "" or 0.
func (a Attributes) Truthy(name string) bool {
	return truthy(a[name])
}

// Merge returns a new map with b applied over a. Keys whose value in b is not
// truthy are removed from the result.
func (a Attributes) Merge(b Attributes) Attributes {
	out := make(Attributes, len(a)+len(b))
	for k, v := range a {
		if truthy(v) {
			out[k] = v
		}
	}
	for k, v := range b {
		if truthy(v) {
			out[k] = v
		} else {
			delete(out, k)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Block returns only the line-level formats of a.
func (a Attributes) Block() Attributes {
	return a.filter(IsBlock)
}

// Inline returns only the character-level formats of a.
func (a Attributes) Inline() Attributes {
	return a.filter(func(name string) bool { return !IsBlock(name) })
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

func (a Attributes) filter(keep func(string) bool) Attributes {
	var out Attributes
	for k, v := range a {
		if !keep(k) || !truthy(v) {
			continue
		}
		if out == nil {
			out = make(Attributes)
		}
		out[k] = v
	}
	return out
}

// compact drops unset values; used so inserted ops never carry false flags.
func (a Attributes) compact() Attributes {
	return a.filter(func(string) bool { return true })
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}
