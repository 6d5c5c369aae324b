package keyboard_test

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/document"
	"github.com/yaklabco/mdshortcut/pkg/editor"
	"github.com/yaklabco/mdshortcut/pkg/keyboard"
)

func newKeymap(opts keyboard.Options) *keyboard.Keymap {
	opts.Logger = log.New(io.Discard)
	return keyboard.New(opts)
}

func docWithCaret(t *testing.T, text string, index int) *document.Document {
	t.Helper()
	doc := document.FromText(text)
	require.NoError(t, doc.SetSelection(index, delta.SourceAPI))
	return doc
}

func TestListAutofill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"starts at one", "1.", "ordered"},
		{"starts at twelve", "12.", "ordered-12"},
		{"starts at zero", "0.", "ordered-0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := docWithCaret(t, tc.text, len(tc.text))
			handled, err := newKeymap(keyboard.Options{}).Handle(doc, keyboard.KeySpace)
			require.NoError(t, err)
			require.True(t, handled)

			assert.Equal(t, "\n", doc.Text(), "prefix is removed and the space is not typed")
			assert.Equal(t, delta.Attributes{delta.AttrList: tc.want}, doc.Lines()[0].Formats)
		})
	}
}

func TestListAutofill_NotApplicable(t *testing.T) {
	t.Parallel()

	km := newKeymap(keyboard.Options{})

	t.Run("text before the number", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "a1.", 3)
		handled, err := km.Handle(doc, keyboard.KeySpace)
		require.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("header line", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "3.", 2)
		require.NoError(t, doc.FormatLine(0, 0, delta.AttrHeader, 1, delta.SourceAPI))
		handled, err := km.Handle(doc, keyboard.KeySpace)
		require.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("table cell", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "3.", 2)
		require.NoError(t, doc.FormatLine(0, 0, delta.AttrTableCellLine, true, delta.SourceAPI))
		handled, err := km.Handle(doc, keyboard.KeySpace)
		require.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("range selection", func(t *testing.T) {
		t.Parallel()
		doc := document.FromText("3.x")
		require.NoError(t, doc.Select(editor.Range{Index: 2, Length: 1}))
		handled, err := km.Handle(doc, keyboard.KeySpace)
		require.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "3.", 2)
		handled, err := newKeymap(keyboard.Options{Disable: []string{keyboard.BindingListAutofill}}).
			Handle(doc, keyboard.KeySpace)
		require.NoError(t, err)
		assert.False(t, handled)
	})
}

func TestBlockBackspace_ListAndQuote(t *testing.T) {
	t.Parallel()

	for _, format := range []struct {
		name  string
		value any
	}{
		{delta.AttrList, "bullet"},
		{delta.AttrBlockquote, true},
	} {
		t.Run(format.name, func(t *testing.T) {
			t.Parallel()

			km := newKeymap(keyboard.Options{})
			doc := docWithCaret(t, "item", 2)
			require.NoError(t, doc.FormatLine(0, 0, format.name, format.value, delta.SourceAPI))

			handled, err := km.Handle(doc, keyboard.KeyBackspace)
			require.NoError(t, err)
			assert.False(t, handled, "caret inside the text keeps default backspace")

			require.NoError(t, doc.SetSelection(0, delta.SourceAPI))
			handled, err = km.Handle(doc, keyboard.KeyBackspace)
			require.NoError(t, err)
			assert.True(t, handled)
			assert.Nil(t, doc.Lines()[0].Formats)
			assert.Equal(t, "item\n", doc.Text())
		})
	}
}

func TestBlockBackspace_CodeBlock(t *testing.T) {
	t.Parallel()

	km := newKeymap(keyboard.Options{})

	t.Run("empty block loses its format", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "", 0)
		require.NoError(t, doc.FormatLine(0, 0, delta.AttrCodeBlock, true, delta.SourceAPI))

		handled, err := km.Handle(doc, keyboard.KeyBackspace)
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Nil(t, doc.Lines()[0].Formats)
	})

	t.Run("block with code keeps default backspace", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "x\n\n", 2)
		require.NoError(t, doc.FormatLine(0, 3, delta.AttrCodeBlock, true, delta.SourceAPI))

		handled, err := km.Handle(doc, keyboard.KeyBackspace)
		require.NoError(t, err)
		assert.False(t, handled)
		assert.Equal(t, delta.Attributes{delta.AttrCodeBlock: true}, doc.Lines()[1].Formats)
	})

	t.Run("plain line", func(t *testing.T) {
		t.Parallel()
		doc := docWithCaret(t, "", 0)
		handled, err := km.Handle(doc, keyboard.KeyBackspace)
		require.NoError(t, err)
		assert.False(t, handled)
	})
}

func TestSave(t *testing.T) {
	t.Parallel()

	doc := docWithCaret(t, "text", 4)

	handled, err := newKeymap(keyboard.Options{}).Handle(doc, keyboard.KeySave)
	require.NoError(t, err)
	assert.False(t, handled, "without a callback ctrl+s is not consumed")

	saves := 0
	km := newKeymap(keyboard.Options{OnSave: func() error {
		saves++
		return nil
	}})
	handled, err = km.Handle(doc, keyboard.KeySave)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, saves)

	errDisk := errors.New("disk full")
	km = newKeymap(keyboard.Options{OnSave: func() error { return errDisk }})
	_, err = km.Handle(doc, keyboard.KeySave)
	require.ErrorIs(t, err, errDisk)
	assert.Contains(t, err.Error(), `binding "save"`)
}

func TestHandle_Blurred(t *testing.T) {
	t.Parallel()

	doc := docWithCaret(t, "1.", 2)
	doc.Blur()

	handled, err := newKeymap(keyboard.Options{}).Handle(doc, keyboard.KeySpace)
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, "1.\n", doc.Text())
}

func TestBind_CustomBinding(t *testing.T) {
	t.Parallel()

	km := newKeymap(keyboard.Options{Disable: keyboard.Names()})
	assert.Empty(t, km.Bindings())

	var got keyboard.Context
	km.Bind(keyboard.Binding{
		Name: "capture",
		Key:  keyboard.Char('x'),
		Handler: func(_ keyboard.Editor, ctx keyboard.Context) (bool, error) {
			got = ctx
			return true, nil
		},
	})

	doc := docWithCaret(t, "ab\ncd", 4)
	handled, err := km.Handle(doc, keyboard.Char('x'))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "c", got.Prefix)
	assert.Equal(t, "d", got.Suffix)
	assert.Equal(t, 1, got.Offset)
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "space", keyboard.KeySpace.String())
	assert.Equal(t, "ctrl+s", keyboard.KeySave.String())
	assert.Equal(t, "Enter", keyboard.Char('\n').String())
	assert.Equal(t, "q", keyboard.Char('q').String())
}
