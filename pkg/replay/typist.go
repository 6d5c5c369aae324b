package replay

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/document"
	"github.com/yaklabco/mdshortcut/pkg/editor"
	"github.com/yaklabco/mdshortcut/pkg/keyboard"
	"github.com/yaklabco/mdshortcut/pkg/shortcut"
)

// Options configures a Typist.
type Options struct {
	Shortcuts shortcut.Options
	Keyboard  keyboard.Options

	// Logger is passed to the engine and keymap unless they set their own.
	Logger *log.Logger
}

// Typist owns a document with a shortcut engine and keymap attached, and
// plays key presses into it the way a host editor would.
type Typist struct {
	doc    *document.Document
	engine *shortcut.Engine
	keymap *keyboard.Keymap
	logger *log.Logger
	keys   int
}

// New returns a Typist over an empty document.
func New(opts Options) *Typist {
	return NewWithDocument(document.New(), opts)
}

// NewWithDocument returns a Typist over doc.
func NewWithDocument(doc *document.Document, opts Options) *Typist {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Shortcuts.Logger == nil {
		opts.Shortcuts.Logger = logger
	}
	if opts.Keyboard.Logger == nil {
		opts.Keyboard.Logger = logger
	}

	return &Typist{
		doc:    doc,
		engine: shortcut.New(doc, opts.Shortcuts),
		keymap: keyboard.New(opts.Keyboard),
		logger: logger,
	}
}

// Document returns the document being typed into.
func (t *Typist) Document() *document.Document {
	return t.doc
}

// Engine returns the attached shortcut engine.
func (t *Typist) Engine() *shortcut.Engine {
	return t.engine
}

// Keys returns the number of keys pressed so far.
func (t *Typist) Keys() int {
	return t.keys
}

// Close detaches the shortcut engine.
func (t *Typist) Close() {
	t.engine.Close()
}

// Type parses script and presses each key in turn.
func (t *Typist) Type(script string) error {
	keys, err := ParseScript(script)
	if err != nil {
		return err
	}
	for i, key := range keys {
		if err := t.Press(key); err != nil {
			return fmt.Errorf("key %d (%s): %w", i, key, err)
		}
	}
	return nil
}

// Press runs one key: the keymap first, then the key's default action, then
// the deferred work it scheduled.
func (t *Typist) Press(key keyboard.Key) error {
	t.keys++
	handled, err := t.keymap.Handle(t.doc, key)
	if err != nil {
		return err
	}
	if !handled {
		if err := t.defaultAction(key); err != nil {
			return err
		}
	}
	return t.doc.Drain()
}

func (t *Typist) defaultAction(key keyboard.Key) error {
	sel, ok := t.doc.Selection()
	if !ok {
		t.logger.Debug("key without focus", logging.FieldKey, key)
		return nil
	}

	switch key {
	case keyboard.KeyEnter:
		return t.enter(sel)
	case keyboard.KeyBackspace:
		return t.backspace(sel)
	case keyboard.KeyLeft:
		return t.moveTo(sel.Index - 1)
	case keyboard.KeyRight:
		return t.moveTo(sel.Index + sel.Length + 1)
	case keyboard.KeyHome, keyboard.KeyEnd:
		line, _, ok := t.doc.LineAt(sel.Index)
		if !ok {
			return nil
		}
		if key == keyboard.KeyHome {
			return t.moveTo(line.Start)
		}
		return t.moveTo(line.End())
	}

	if key.Ctrl || len([]rune(key.Name)) != 1 {
		return nil
	}
	return t.insert(sel, key.Name, t.doc.TypingAttributes())
}

func (t *Typist) insert(sel editor.Range, text string, attrs delta.Attributes) error {
	if sel.Length > 0 {
		if err := t.doc.DeleteText(sel.Index, sel.Length, delta.SourceUser); err != nil {
			return err
		}
	}
	return t.doc.InsertText(sel.Index, text, attrs, delta.SourceUser)
}

// enter splits the line. Both halves keep the line's block formats except
// that a heading does not continue onto the new line; Enter on an empty list
// item ends the list instead.
func (t *Typist) enter(sel editor.Range) error {
	line, _, ok := t.doc.LineAt(sel.Index)
	if !ok {
		return nil
	}

	if line.Text == "" && sel.Length == 0 && line.Formats.Truthy(delta.AttrList) {
		return t.doc.FormatLine(line.Start, 0, delta.AttrList, nil, delta.SourceUser)
	}

	attrs := line.Formats.Merge(t.doc.TypingAttributes())
	if err := t.insert(sel, "\n", attrs); err != nil {
		return err
	}

	if line.Formats.Truthy(delta.AttrHeader) {
		next, _ := t.doc.Selection()
		return t.doc.FormatLine(next.Index, 0, delta.AttrHeader, nil, delta.SourceSilent)
	}
	return nil
}

func (t *Typist) backspace(sel editor.Range) error {
	if sel.Length > 0 {
		return t.doc.DeleteText(sel.Index, sel.Length, delta.SourceUser)
	}
	if sel.Index == 0 {
		return nil
	}
	return t.doc.DeleteText(sel.Index-1, 1, delta.SourceUser)
}

func (t *Typist) moveTo(index int) error {
	index = min(max(index, 0), t.doc.Length()-1)
	return t.doc.SetSelection(index, delta.SourceUser)
}
