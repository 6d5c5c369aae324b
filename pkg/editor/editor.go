// Package editor defines the capabilities a rich-text editor host exposes to
// behaviours layered on top of it, and the task queue hosts use to run
// deferred edits after a change notification has been dispatched.
//
// Offsets are 0-based document positions counted in runes; an embed occupies
// one position and every line ends with a newline position.
package editor

import "github.com/yaklabco/mdshortcut/pkg/delta"

// EmbedRune stands in for an embed in plain-text views of a line, keeping
// rune offsets in the text equal to document offsets.
const EmbedRune = '\uFFFC'

// Range is a selection: a caret when Length is 0.
type Range struct {
	Index  int
	Length int
}

// Line is a snapshot of one line of the document.
type Line struct {
	// Text is the plain text of the line without its trailing newline.
	Text string

	// Start is the document offset of the first position of the line.
	Start int

	// Length is the number of positions in the line, excluding the newline.
	Length int

	// Formats holds the line-level formats (header, list, code-block, ...).
	Formats delta.Attributes
}

// End returns the offset of the line's terminating newline.
func (l Line) End() int {
	return l.Start + l.Length
}

// Change is a text-change notification.
type Change struct {
	// Delta describes the edit that was applied.
	Delta *delta.Delta

	// OldContents is the document before the edit.
	OldContents *delta.Delta

	// Source identifies who made the edit.
	Source delta.Source
}

// ChangeHandler receives text-change notifications synchronously.
type ChangeHandler func(Change)

// Scheduler runs tasks on a later scheduling turn, after the current
// synchronous dispatch has returned.
type Scheduler interface {
	Defer(task func() error)
}

// Editor is the capability set a host editor offers.
type Editor interface {
	Scheduler

	// Selection returns the current selection, or false when the editor has
	// no focus.
	Selection() (Range, bool)

	// LineAt returns the line containing index and the offset of index within
	// that line.
	LineAt(index int) (Line, int, bool)

	// Format returns the combined line and character formats at r, including
	// pending caret formats.
	Format(r Range) delta.Attributes

	DeleteText(index, length int, source delta.Source) error
	InsertText(index int, text string, attrs delta.Attributes, source delta.Source) error
	InsertEmbed(index int, kind string, value any, source delta.Source) error
	FormatLine(index, length int, name string, value any, source delta.Source) error

	// FormatCaret sets a pending character format for text typed next at the
	// caret. A false value suppresses inheriting that format.
	FormatCaret(name string, value any)

	SetSelection(index int, source delta.Source) error

	// OnTextChange subscribes fn to text-change notifications and returns a
	// function that cancels the subscription.
	OnTextChange(fn ChangeHandler) (unsubscribe func())
}
