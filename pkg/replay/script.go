// Package replay types keystroke scripts into a document with the shortcut
// engine and keymap attached, one scheduling turn per key.
package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/keyboard"
)

// ErrBadToken is returned for a malformed or unknown <token> in a script.
var ErrBadToken = errors.New("bad script token")

//nolint:gochecknoglobals // Read-only token table.
var tokens = map[string]keyboard.Key{
	"bs":    keyboard.KeyBackspace,
	"left":  keyboard.KeyLeft,
	"right": keyboard.KeyRight,
	"home":  keyboard.KeyHome,
	"end":   keyboard.KeyEnd,
	"c-s":   keyboard.KeySave,
	"lt":    keyboard.Char('<'),
}

// Tokens returns the recognised token names.
func Tokens() []string {
	return []string{"bs", "left", "right", "home", "end", "c-s", "lt"}
}

// ParseScript turns a script into key presses. Characters type themselves,
// a newline presses Enter, carriage returns are dropped, and <name> presses a
// named key (<lt> types a literal '<').
func ParseScript(script string) ([]keyboard.Key, error) {
	var keys []keyboard.Key

	rest := script
	for rest != "" {
		open := strings.IndexAny(rest, "<\r")
		if open < 0 {
			keys = appendChars(keys, rest)
			break
		}
		keys = appendChars(keys, rest[:open])

		if rest[open] == '\r' {
			rest = rest[open+1:]
			continue
		}

		end := strings.IndexByte(rest[open:], '>')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated %q at byte %d", ErrBadToken, rest[open:], len(script)-len(rest)+open)
		}
		name := rest[open+1 : open+end]
		key, ok := tokens[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: <%s> at byte %d", ErrBadToken, name, len(script)-len(rest)+open)
		}
		keys = append(keys, key)
		rest = rest[open+end+1:]
	}

	return keys, nil
}

func appendChars(keys []keyboard.Key, s string) []keyboard.Key {
	for _, r := range s {
		keys = append(keys, keyboard.Char(r))
	}
	return keys
}
