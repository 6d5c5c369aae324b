package shortcut

import (
	"fmt"

	"github.com/yaklabco/mdshortcut/pkg/delta"
)

// EditKind identifies the editor call an Edit performs.
type EditKind int

const (
	// EditDelete removes Length positions at Index.
	EditDelete EditKind = iota

	// EditInsertText inserts Text with Attrs at Index.
	EditInsertText

	// EditInsertEmbed inserts an embed of kind Name with Value at Index.
	EditInsertEmbed

	// EditFormatLine sets the block format Name to Value on the lines touched
	// by [Index, Index+Length].
	EditFormatLine

	// EditFormatCaret sets the pending caret format Name to Value.
	EditFormatCaret

	// EditSetSelection moves the caret to Index.
	EditSetSelection
)

// String returns the edit kind name used in logs and errors.
func (k EditKind) String() string {
	switch k {
	case EditDelete:
		return "delete"
	case EditInsertText:
		return "insert-text"
	case EditInsertEmbed:
		return "insert-embed"
	case EditFormatLine:
		return "format-line"
	case EditFormatCaret:
		return "format-caret"
	case EditSetSelection:
		return "set-selection"
	default:
		return fmt.Sprintf("EditKind(%d)", int(k))
	}
}

// Edit is one document mutation of a rewrite. Offsets are document positions
// valid against the document as it stands once the preceding edits of the
// same rewrite have been applied.
type Edit struct {
	Kind   EditKind
	Index  int
	Length int
	Text   string
	Attrs  delta.Attributes
	Name   string
	Value  any
	Source delta.Source
}

// EditBuilder accumulates the edits of one rewrite in application order.
type EditBuilder struct {
	Edits []Edit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]Edit, 0, 4),
	}
}

// Delete adds an edit removing length positions at index. Empty deletes are dropped.
func (b *EditBuilder) Delete(index, length int) *EditBuilder {
	if length <= 0 {
		return b
	}
	b.Edits = append(b.Edits, Edit{Kind: EditDelete, Index: index, Length: length, Source: delta.SourceAPI})
	return b
}

// InsertText adds an edit inserting styled text at index.
func (b *EditBuilder) InsertText(index int, text string, attrs delta.Attributes) *EditBuilder {
	b.Edits = append(b.Edits, Edit{Kind: EditInsertText, Index: index, Text: text, Attrs: attrs, Source: delta.SourceAPI})
	return b
}

// InsertEmbed adds an edit inserting an embed at index.
func (b *EditBuilder) InsertEmbed(index int, kind string, value any) *EditBuilder {
	b.Edits = append(b.Edits, Edit{Kind: EditInsertEmbed, Index: index, Name: kind, Value: value, Source: delta.SourceAPI})
	return b
}

// FormatLine adds an edit setting a block format on the line at index.
func (b *EditBuilder) FormatLine(index int, name string, value any) *EditBuilder {
	b.Edits = append(b.Edits, Edit{Kind: EditFormatLine, Index: index, Name: name, Value: value, Source: delta.SourceAPI})
	return b
}

// ClearCaret adds edits resetting the caret toggles for names.
func (b *EditBuilder) ClearCaret(names ...string) *EditBuilder {
	for _, name := range names {
		b.Edits = append(b.Edits, Edit{Kind: EditFormatCaret, Name: name, Value: false})
	}
	return b
}

// Select adds an edit moving the caret to index.
func (b *EditBuilder) Select(index int) *EditBuilder {
	b.Edits = append(b.Edits, Edit{Kind: EditSetSelection, Index: index, Source: delta.SourceSilent})
	return b
}

// Silent marks the most recent edit as silent, suppressing its change notification.
func (b *EditBuilder) Silent() *EditBuilder {
	if n := len(b.Edits); n > 0 {
		b.Edits[n-1].Source = delta.SourceSilent
	}
	return b
}

// Build returns the accumulated edits.
func (b *EditBuilder) Build() []Edit {
	return b.Edits
}
