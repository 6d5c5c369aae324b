package keyboard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/editor"
)

// Built-in binding names.
const (
	BindingListAutofill   = "list autofill"
	BindingBlockBackspace = "block backspace"
	BindingSave           = "save"
)

// Names returns the built-in binding names in dispatch order.
func Names() []string {
	return []string{BindingListAutofill, BindingBlockBackspace, BindingSave}
}

func builtins(onSave func() error) []Binding {
	return []Binding{
		{
			Name:      BindingListAutofill,
			Key:       KeySpace,
			Collapsed: true,
			Prefix:    regexp.MustCompile(`^\d+\.$`),
			NoFormat: []string{
				delta.AttrList,
				delta.AttrCodeBlock,
				delta.AttrBlockquote,
				delta.AttrHeader,
				delta.AttrTableCellLine,
			},
			Handler: listAutofill,
		},
		{
			Name:      BindingBlockBackspace,
			Key:       KeyBackspace,
			AnyFormat: []string{delta.AttrCodeBlock, delta.AttrList, delta.AttrBlockquote},
			Handler:   blockBackspace,
		},
		{
			Name: BindingSave,
			Key:  KeySave,
			Handler: func(Editor, Context) (bool, error) {
				if onSave == nil {
					return false, nil
				}
				return true, onSave()
			},
		},
	}
}

// listAutofill turns "N." typed at line start into an ordered list starting
// at N. Lists starting at 1 use the plain "ordered" value.
func listAutofill(ed Editor, ctx Context) (bool, error) {
	start, err := strconv.Atoi(strings.TrimSuffix(ctx.Prefix, "."))
	if err != nil {
		return false, nil //nolint:nilerr // Not a number we can use; let the space through.
	}

	value := "ordered"
	if start != 1 {
		value = fmt.Sprintf("ordered-%d", start)
	}

	if err := ed.FormatLine(ctx.Range.Index, 0, delta.AttrList, value, delta.SourceAPI); err != nil {
		return true, err
	}
	n := len([]rune(ctx.Prefix))
	return true, ed.DeleteText(ctx.Range.Index-n, n, delta.SourceAPI)
}

// blockBackspace removes a block format instead of joining lines: an empty
// code block loses its format, and a list item or blockquote loses it when
// the caret is at line start.
func blockBackspace(ed Editor, ctx Context) (bool, error) {
	switch {
	case ctx.Formats.Truthy(delta.AttrCodeBlock):
		if !codeBlockEmpty(ed, ctx.Line) {
			return false, nil
		}
	case ctx.Formats.Truthy(delta.AttrList), ctx.Formats.Truthy(delta.AttrBlockquote):
		if ctx.Prefix != "" {
			return false, nil
		}
	default:
		return false, nil
	}

	return true, ed.RemoveFormat(ctx.Range.Index, ctx.Range.Length, delta.SourceAPI)
}

// codeBlockEmpty reports whether every line of the code block containing
// line is empty.
func codeBlockEmpty(ed editor.Editor, line editor.Line) bool {
	if line.Text != "" {
		return false
	}

	for cur := line; cur.Start > 0; {
		prev, _, ok := ed.LineAt(cur.Start - 1)
		if !ok || !prev.Formats.Truthy(delta.AttrCodeBlock) {
			break
		}
		if prev.Text != "" {
			return false
		}
		cur = prev
	}

	for cur := line; ; {
		next, _, ok := ed.LineAt(cur.End() + 1)
		if !ok || !next.Formats.Truthy(delta.AttrCodeBlock) {
			break
		}
		if next.Text != "" {
			return false
		}
		cur = next
	}

	return true
}
