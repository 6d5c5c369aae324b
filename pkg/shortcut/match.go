package shortcut

import (
	"unicode/utf8"

	"github.com/yaklabco/mdshortcut/pkg/editor"
)

// Trigger is the character whose insertion started matching.
type Trigger int

const (
	// TriggerSpace is a typed space; the examined text is the caret's line.
	TriggerSpace Trigger = iota

	// TriggerNewline is a typed Enter; the examined text is the line the
	// newline ended, plus a synthesized trailing space.
	TriggerNewline
)

// String returns the trigger name.
func (t Trigger) String() string {
	if t == TriggerNewline {
		return "newline"
	}
	return "space"
}

// Match describes one pattern match against the examined text of a line.
type Match struct {
	// Pattern is the name of the matching pattern.
	Pattern string

	// Text is the examined text. On the newline path it ends with a space
	// that is not in the document.
	Text string

	// Line is the examined line.
	Line editor.Line

	// Caret is the document offset of the caret when the trigger fired.
	Caret int

	// Trigger is the character that started matching.
	Trigger Trigger

	// groups holds rune offsets into Text: start and end per submatch, -1
	// for a group that did not participate.
	groups []int
}

// newMatch converts byte submatch indices from regexp into rune offsets.
func newMatch(p Pattern, text string, line editor.Line, caret int, trigger Trigger, loc []int) Match {
	groups := make([]int, len(loc))
	for i, b := range loc {
		if b < 0 {
			groups[i] = -1
			continue
		}
		groups[i] = utf8.RuneCountInString(text[:b])
	}
	return Match{
		Pattern: p.Name,
		Text:    text,
		Line:    line,
		Caret:   caret,
		Trigger: trigger,
		groups:  groups,
	}
}

// Start returns the document offset of the first matched position.
func (m Match) Start() int {
	return m.Line.Start + m.groups[0]
}

// Span returns the number of matched positions present in the document. The
// synthesized space of the newline path is not counted.
func (m Match) Span() int {
	end := min(m.groups[1], m.Line.Length)
	return max(end-m.groups[0], 0)
}

// Matched returns the full matched text.
func (m Match) Matched() string {
	return m.Group(0)
}

// Group returns the text of submatch i, or "" when it did not participate.
func (m Match) Group(i int) string {
	if 2*i+1 >= len(m.groups) || m.groups[2*i] < 0 {
		return ""
	}
	runes := []rune(m.Text)
	return string(runes[m.groups[2*i]:m.groups[2*i+1]])
}

// followedBySpace reports whether the document position right after the
// match holds a space. The synthesized space of the newline path does not count.
func (m Match) followedBySpace() bool {
	end := m.groups[1]
	if end >= m.Line.Length {
		return false
	}
	return []rune(m.Text)[end] == ' '
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
