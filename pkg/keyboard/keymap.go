// Package keyboard provides key bindings that run before a key's default
// editing action: ordered-list autofill, block-format backspace, and save.
package keyboard

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdshortcut/internal/logging"
	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/editor"
)

// Editor is the editor capability set bindings need.
type Editor interface {
	editor.Editor

	// RemoveFormat clears character formats in [index, index+length) and the
	// block formats of every line touched by that span.
	RemoveFormat(index, length int, source delta.Source) error
}

// Key is a key press.
type Key struct {
	// Name is the printed character, or a key name such as "Backspace".
	Name string

	// Ctrl is set for the platform shortcut modifier.
	Ctrl bool
}

// Named keys.
//
//nolint:gochecknoglobals // Immutable key values.
var (
	KeySpace     = Key{Name: " "}
	KeyEnter     = Key{Name: "Enter"}
	KeyBackspace = Key{Name: "Backspace"}
	KeyLeft      = Key{Name: "Left"}
	KeyRight     = Key{Name: "Right"}
	KeyHome      = Key{Name: "Home"}
	KeyEnd       = Key{Name: "End"}
	KeySave      = Key{Name: "s", Ctrl: true}
)

// Char returns the key that types r.
func Char(r rune) Key {
	if r == '\n' {
		return KeyEnter
	}
	return Key{Name: string(r)}
}

// String returns a readable key name.
func (k Key) String() string {
	name := k.Name
	if name == " " {
		name = "space"
	}
	if k.Ctrl {
		return "ctrl+" + name
	}
	return name
}

// Context describes where a key was pressed.
type Context struct {
	Range   editor.Range
	Line    editor.Line
	Offset  int
	Prefix  string
	Suffix  string
	Formats delta.Attributes
}

// HandlerFunc runs a binding. It reports whether the key was consumed; an
// unconsumed key falls through to later bindings and then the default action.
type HandlerFunc func(ed Editor, ctx Context) (bool, error)

// Binding attaches a handler to a key, gated on the caret context.
type Binding struct {
	Name string
	Key  Key

	// Collapsed requires a caret rather than a range selection.
	Collapsed bool

	// Prefix, when set, must match the line text before the caret.
	Prefix *regexp.Regexp

	// AnyFormat requires at least one of these formats at the caret.
	AnyFormat []string

	// NoFormat forbids every one of these formats at the caret.
	NoFormat []string

	Handler HandlerFunc
}

func (b Binding) applies(key Key, ctx Context) bool {
	if b.Key != key {
		return false
	}
	if b.Collapsed && ctx.Range.Length != 0 {
		return false
	}
	if b.Prefix != nil && !b.Prefix.MatchString(ctx.Prefix) {
		return false
	}
	if len(b.AnyFormat) > 0 && !slices.ContainsFunc(b.AnyFormat, ctx.Formats.Truthy) {
		return false
	}
	if slices.ContainsFunc(b.NoFormat, ctx.Formats.Truthy) {
		return false
	}
	return true
}

// Options configures a Keymap.
type Options struct {
	// Disable names bindings to leave out. Unknown names are inert.
	Disable []string

	// OnSave is called for the save binding. Without it ctrl+s is not consumed.
	OnSave func() error

	// Logger receives debug output. Defaults to logging.Default().
	Logger *log.Logger
}

// Keymap holds the active bindings in dispatch order.
type Keymap struct {
	bindings []Binding
	logger   *log.Logger
}

// New returns a Keymap with the built-in bindings, minus those disabled.
func New(opts Options) *Keymap {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	km := &Keymap{logger: logger}
	for _, b := range builtins(opts.OnSave) {
		if slices.Contains(opts.Disable, b.Name) {
			continue
		}
		km.bindings = append(km.bindings, b)
	}
	return km
}

// Bind appends a binding after the existing ones.
func (k *Keymap) Bind(b Binding) {
	k.bindings = append(k.bindings, b)
}

// Bindings returns the active bindings in dispatch order.
func (k *Keymap) Bindings() []Binding {
	return slices.Clone(k.bindings)
}

// Handle dispatches key to the first applicable binding that consumes it.
// It reports whether the key was consumed.
func (k *Keymap) Handle(ed Editor, key Key) (bool, error) {
	sel, ok := ed.Selection()
	if !ok {
		return false, nil
	}
	line, offset, ok := ed.LineAt(sel.Index)
	if !ok {
		return false, nil
	}

	runes := []rune(line.Text)
	ctx := Context{
		Range:   sel,
		Line:    line,
		Offset:  offset,
		Prefix:  string(runes[:offset]),
		Suffix:  string(runes[offset:]),
		Formats: ed.Format(sel),
	}

	for _, b := range k.bindings {
		if !b.applies(key, ctx) {
			continue
		}
		handled, err := b.Handler(ed, ctx)
		if err != nil {
			return true, fmt.Errorf("binding %q: %w", b.Name, err)
		}
		if handled {
			k.logger.Debug("key handled", logging.FieldBinding, b.Name, logging.FieldKey, key)
			return true, nil
		}
	}
	return false, nil
}
