// Package document implements an in-memory rich-text document that satisfies
// editor.Editor.
//
// The document is a flat sequence of units: characters carrying inline
// formats, embeds, and newlines carrying the formats of the line they end.
// It always ends with a newline. Offsets count units, so an embed has length 1.
package document

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/editor"
)

var _ editor.Editor = (*Document)(nil)

type unit struct {
	r     rune
	embed *delta.Embed
	attrs delta.Attributes
}

func (u unit) isNewline() bool {
	return u.embed == nil && u.r == '\n'
}

type subscription struct {
	id int
	fn editor.ChangeHandler
}

// Document is an in-memory rich-text document with a selection, pending caret
// formats, change subscribers, and a deferred task queue.
//
// A Document is not safe for concurrent use; hosts drive it from one goroutine.
type Document struct {
	units   []unit
	sel     editor.Range
	focused bool
	caret   delta.Attributes

	subs   []subscription
	nextID int

	queue *editor.TaskQueue
}

// New returns an empty, focused document with the caret at 0.
func New() *Document {
	return &Document{
		units:   []unit{{r: '\n'}},
		focused: true,
		queue:   editor.NewTaskQueue(),
	}
}

// FromText returns a focused document holding plain text.
func FromText(text string) *Document {
	doc := New()
	doc.units = doc.units[:0]
	for _, r := range text {
		doc.units = append(doc.units, unit{r: r})
	}
	doc.ensureTrailingNewline()
	return doc
}

// FromDelta builds a document from insert-only contents.
func FromDelta(contents *delta.Delta) (*Document, error) {
	doc := New()
	doc.units = doc.units[:0]

	for i, op := range contents.Ops {
		switch {
		case op.Embed != nil:
			embed := *op.Embed
			doc.units = append(doc.units, unit{embed: &embed, attrs: op.Attributes.Inline()})
		case op.Insert != "":
			doc.units = append(doc.units, unitsFor(op.Insert, op.Attributes)...)
		default:
			return nil, fmt.Errorf("contents op %d: only inserts are allowed", i)
		}
	}

	doc.ensureTrailingNewline()
	return doc, nil
}

func (d *Document) ensureTrailingNewline() {
	if len(d.units) == 0 || !d.units[len(d.units)-1].isNewline() {
		d.units = append(d.units, unit{r: '\n'})
	}
}

// Length returns the number of positions in the document, final newline included.
func (d *Document) Length() int {
	return len(d.units)
}

// Text returns the plain text of the document, embeds rendered as editor.EmbedRune.
func (d *Document) Text() string {
	return d.text(0, len(d.units))
}

// Contents returns the document as an insert-only delta.
func (d *Document) Contents() *delta.Delta {
	out := delta.New()
	for _, u := range d.units {
		if u.embed != nil {
			out.InsertEmbed(u.embed.Kind, u.embed.Value, u.attrs)
			continue
		}
		out.Insert(string(u.r), u.attrs)
	}
	return out
}

// Lines returns a snapshot of every line.
func (d *Document) Lines() []editor.Line {
	var lines []editor.Line
	start := 0
	for i, u := range d.units {
		if !u.isNewline() {
			continue
		}
		lines = append(lines, d.line(start, i))
		start = i + 1
	}
	return lines
}

// LineAt returns the line containing index and the offset of index within it.
// A newline position belongs to the line it ends.
func (d *Document) LineAt(index int) (editor.Line, int, bool) {
	if index < 0 || index >= len(d.units) {
		return editor.Line{}, 0, false
	}

	start := index
	for start > 0 && !d.units[start-1].isNewline() {
		start--
	}
	end := index
	for !d.units[end].isNewline() {
		end++
	}

	return d.line(start, end), index - start, true
}

func (d *Document) line(start, end int) editor.Line {
	return editor.Line{
		Text:    d.text(start, end),
		Start:   start,
		Length:  end - start,
		Formats: d.units[end].attrs.Block(),
	}
}

func (d *Document) text(start, end int) string {
	var b strings.Builder
	for _, u := range d.units[start:end] {
		if u.embed != nil {
			b.WriteRune(editor.EmbedRune)
			continue
		}
		b.WriteRune(u.r)
	}
	return b.String()
}

// Selection returns the current selection, or false when the document is blurred.
func (d *Document) Selection() (editor.Range, bool) {
	return d.sel, d.focused
}

// Blur drops the selection, as when the editor loses focus.
func (d *Document) Blur() {
	d.focused = false
	d.caret = nil
}

// SetSelection places a collapsed caret at index and focuses the document.
func (d *Document) SetSelection(index int, _ delta.Source) error {
	return d.Select(editor.Range{Index: index})
}

// Select sets the selection to r and focuses the document.
func (d *Document) Select(r editor.Range) error {
	if r.Index < 0 || r.Length < 0 || r.Index+r.Length > len(d.units)-1 {
		return &RangeError{Op: "select", Index: r.Index, Length: r.Length, DocLength: len(d.units)}
	}
	d.sel = r
	d.focused = true
	d.caret = nil
	return nil
}

// Format returns the line formats at r.Index merged with the character
// formats of r. For a caret these are the formats of the preceding character
// on the same line overridden by pending caret formats; for a range, the
// formats shared by every character in it.
func (d *Document) Format(r editor.Range) delta.Attributes {
	line, _, ok := d.LineAt(r.Index)
	if !ok {
		return nil
	}

	var inline delta.Attributes
	if r.Length == 0 {
		if r.Index > line.Start {
			inline = d.units[r.Index-1].attrs.Inline()
		}
		if d.focused && r == d.sel {
			inline = inline.Merge(d.caret)
		}
	} else {
		inline = d.commonInline(r.Index, min(r.Index+r.Length, len(d.units)))
	}

	return line.Formats.Merge(inline)
}

// TypingAttributes returns the character formats text typed at the caret
// would receive. Links are not extended by typing.
func (d *Document) TypingAttributes() delta.Attributes {
	if !d.focused {
		return nil
	}
	attrs := d.Format(editor.Range{Index: d.sel.Index}).Inline()
	delete(attrs, delta.AttrLink)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func (d *Document) commonInline(start, end int) delta.Attributes {
	var common delta.Attributes
	first := true
	for _, u := range d.units[start:end] {
		if u.isNewline() {
			continue
		}
		if first {
			common = u.attrs.Inline()
			first = false
			continue
		}
		for k, v := range common {
			if !attrEqual(u.attrs[k], v) {
				delete(common, k)
			}
		}
	}
	return common
}

// FormatCaret sets a pending format for the next typed text. When the
// selection spans text, the text is formatted instead.
func (d *Document) FormatCaret(name string, value any) {
	if !d.focused {
		return
	}
	if d.sel.Length > 0 {
		_ = d.FormatText(d.sel.Index, d.sel.Length, name, value, delta.SourceAPI)
		return
	}
	if d.caret == nil {
		d.caret = make(delta.Attributes)
	}
	d.caret[name] = value
}

// CaretFormats returns a copy of the pending caret formats.
func (d *Document) CaretFormats() delta.Attributes {
	return d.caret.Clone()
}

// InsertText inserts text at index. Newlines in text receive the block
// formats of attrs; other characters receive its inline formats.
func (d *Document) InsertText(index int, text string, attrs delta.Attributes, source delta.Source) error {
	if err := d.checkPosition("insert", index); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	old := d.snapshot(source)
	inserted := unitsFor(text, attrs)
	d.units = slices.Insert(d.units, index, inserted...)
	d.shiftInsert(index, len(inserted))
	if source == delta.SourceUser {
		d.caret = nil
	}

	d.emit(delta.New().Retain(index, nil).Insert(text, attrs), old, source)
	return nil
}

// InsertEmbed inserts an embed of the given kind at index.
func (d *Document) InsertEmbed(index int, kind string, value any, source delta.Source) error {
	if err := d.checkPosition("insert embed", index); err != nil {
		return err
	}

	old := d.snapshot(source)
	d.units = slices.Insert(d.units, index, unit{embed: &delta.Embed{Kind: kind, Value: value}})
	d.shiftInsert(index, 1)

	d.emit(delta.New().Retain(index, nil).InsertEmbed(kind, value, nil), old, source)
	return nil
}

// DeleteText removes length positions starting at index. The final newline
// cannot be deleted.
func (d *Document) DeleteText(index, length int, source delta.Source) error {
	if index < 0 || length < 0 || index+length > len(d.units)-1 {
		return &RangeError{Op: "delete", Index: index, Length: length, DocLength: len(d.units)}
	}
	if length == 0 {
		return nil
	}

	old := d.snapshot(source)
	d.units = slices.Delete(d.units, index, index+length)
	d.shiftDelete(index, length)
	if source == delta.SourceUser {
		d.caret = nil
	}

	d.emit(delta.New().Retain(index, nil).Delete(length), old, source)
	return nil
}

// FormatLine sets (or, for a non-truthy value, clears) a block format on every
// line touched by [index, index+length]. Setting one of the exclusive block
// formats clears the others on that line.
func (d *Document) FormatLine(index, length int, name string, value any, source delta.Source) error {
	if index < 0 || length < 0 || index > len(d.units)-1 || index+length > len(d.units) {
		return &RangeError{Op: "format line", Index: index, Length: length, DocLength: len(d.units)}
	}

	old := d.snapshot(source)
	change := delta.New()
	cursor := 0
	for _, pos := range d.newlinesIn(index, length) {
		d.units[pos].attrs = setBlock(d.units[pos].attrs, name, value)
		change.Retain(pos-cursor, nil).Retain(1, delta.Attributes{name: value})
		cursor = pos + 1
	}

	d.emit(change, old, source)
	return nil
}

// FormatText sets (or clears) an inline format on the characters and embeds
// in [index, index+length).
func (d *Document) FormatText(index, length int, name string, value any, source delta.Source) error {
	if index < 0 || length < 0 || index+length > len(d.units) {
		return &RangeError{Op: "format text", Index: index, Length: length, DocLength: len(d.units)}
	}
	if length == 0 {
		return nil
	}

	old := d.snapshot(source)
	for i := index; i < index+length; i++ {
		if d.units[i].isNewline() {
			continue
		}
		d.units[i].attrs = d.units[i].attrs.Merge(delta.Attributes{name: value})
	}

	d.emit(delta.New().Retain(index, nil).Retain(length, delta.Attributes{name: value}), old, source)
	return nil
}

// RemoveFormat clears character formats in [index, index+length) and the block
// formats of every line touched by that span.
func (d *Document) RemoveFormat(index, length int, source delta.Source) error {
	if index < 0 || length < 0 || index > len(d.units)-1 || index+length > len(d.units) {
		return &RangeError{Op: "remove format", Index: index, Length: length, DocLength: len(d.units)}
	}

	old := d.snapshot(source)
	removed := make(delta.Attributes)
	for i := index; i < index+length; i++ {
		if d.units[i].isNewline() {
			continue
		}
		for name := range d.units[i].attrs {
			removed[name] = nil
		}
		d.units[i].attrs = nil
	}

	newlines := d.newlinesIn(index, length)
	for _, pos := range newlines {
		for name := range d.units[pos].attrs {
			removed[name] = nil
		}
		d.units[pos].attrs = nil
	}

	end := index + length
	if len(newlines) > 0 {
		end = max(end, newlines[len(newlines)-1]+1)
	}
	d.emit(delta.New().Retain(index, nil).Retain(end-index, removed), old, source)
	return nil
}

// OnTextChange subscribes fn to text-change notifications.
func (d *Document) OnTextChange(fn editor.ChangeHandler) func() {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, fn: fn})

	return func() {
		d.subs = slices.DeleteFunc(d.subs, func(s subscription) bool { return s.id == id })
	}
}

// Defer schedules task for the next drain of the document's task queue.
func (d *Document) Defer(task func() error) {
	d.queue.Defer(task)
}

// Drain runs the tasks deferred so far. Hosts call it once per event-loop turn.
func (d *Document) Drain() error {
	return d.queue.Drain()
}

// Pending returns the number of deferred tasks waiting for a drain.
func (d *Document) Pending() int {
	return d.queue.Len()
}

func (d *Document) checkPosition(op string, index int) error {
	if index < 0 || index > len(d.units)-1 {
		return &RangeError{Op: op, Index: index, DocLength: len(d.units)}
	}
	return nil
}

// newlinesIn returns the positions of the newlines ending the lines touched by
// [index, index+length].
func (d *Document) newlinesIn(index, length int) []int {
	var out []int
	last := min(index+max(length-1, 0), len(d.units)-1)
	pos := index
	for pos < len(d.units) {
		for !d.units[pos].isNewline() {
			pos++
		}
		out = append(out, pos)
		if pos >= last {
			break
		}
		pos++
	}
	return out
}

func (d *Document) shiftInsert(index, n int) {
	if !d.focused {
		return
	}
	shift := func(pos int) int {
		if pos >= index {
			return pos + n
		}
		return pos
	}
	start := shift(d.sel.Index)
	end := shift(d.sel.Index + d.sel.Length)
	d.sel = editor.Range{Index: start, Length: end - start}
}

func (d *Document) shiftDelete(index, n int) {
	if !d.focused {
		return
	}
	shift := func(pos int) int {
		if pos > index {
			return max(index, pos-n)
		}
		return pos
	}
	start := shift(d.sel.Index)
	end := shift(d.sel.Index + d.sel.Length)
	d.sel = editor.Range{Index: start, Length: end - start}
}

func (d *Document) snapshot(source delta.Source) *delta.Delta {
	if source == delta.SourceSilent || len(d.subs) == 0 {
		return nil
	}
	return d.Contents()
}

func (d *Document) emit(change *delta.Delta, old *delta.Delta, source delta.Source) {
	if source == delta.SourceSilent || len(d.subs) == 0 {
		return
	}
	subs := slices.Clone(d.subs)
	for _, s := range subs {
		s.fn(editor.Change{Delta: change, OldContents: old, Source: source})
	}
}

func unitsFor(text string, attrs delta.Attributes) []unit {
	inline := attrs.Inline()
	block := attrs.Block()

	out := make([]unit, 0, len(text))
	for _, r := range text {
		if r == '\n' {
			out = append(out, unit{r: r, attrs: block.Clone()})
			continue
		}
		out = append(out, unit{r: r, attrs: inline.Clone()})
	}
	return out
}

func setBlock(attrs delta.Attributes, name string, value any) delta.Attributes {
	update := delta.Attributes{name: value}
	if (delta.Attributes{name: value}).Truthy(name) && slices.Contains(delta.ExclusiveBlocks(), name) {
		for _, other := range delta.ExclusiveBlocks() {
			if other != name {
				update[other] = nil
			}
		}
	}
	return attrs.Merge(update)
}

func attrEqual(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
