package shortcut

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/yaklabco/mdshortcut/pkg/delta"
)

// Pattern names.
const (
	NameHeader        = "header"
	NameBlockquote    = "blockquote"
	NameCodeBlock     = "code-block"
	NameBoldItalic    = "bolditalic"
	NameBold          = "bold"
	NameItalic        = "italic"
	NameStrikethrough = "strikethrough"
	NameCode          = "code"
	NameHR            = "hr"
	NamePlusUL        = "plus-ul"
	NameAsteriskUL    = "asterisk-ul"
	NameImage         = "image"
	NameLink          = "link"
)

// RewriteFunc turns a match into the edits that rewrite it. Returning no
// edits declines the match.
type RewriteFunc func(m Match) []Edit

// Pattern is one markdown shortcut: a name, the expression tested against the
// line text, and its rewrite.
type Pattern struct {
	Name        string
	Description string
	Expr        *regexp.Regexp
	Rewrite     RewriteFunc
}

// Block reports whether the pattern rewrites line structure rather than text.
func (p Pattern) Block() bool {
	return slices.Contains(tableDenied, p.Name)
}

const (
	wrapperEmphasis = "*_"
	wrapperStrike   = "~"
	wrapperCode     = "`"
)

//nolint:gochecknoglobals // Immutable table built once at init.
var allPatterns = []Pattern{
	{
		Name:        NameHeader,
		Description: "1-6 leading # and a space start a heading of that level",
		Expr:        regexp.MustCompile(`^(#){1,6}\s`),
		Rewrite:     rewriteHeader,
	},
	{
		Name:        NameBlockquote,
		Description: "> and a space at line start start a blockquote",
		Expr:        regexp.MustCompile(`^(>)\s`),
		Rewrite:     rewriteLine(delta.AttrBlockquote, true),
	},
	{
		Name:        NameCodeBlock,
		Description: "``` and a space at line start start a code block",
		Expr:        regexp.MustCompile("^`{3}(?:\\s|\\n)"),
		Rewrite:     rewriteLine(delta.AttrCodeBlock, true),
	},
	{
		Name:        NameBoldItalic,
		Description: "***text*** becomes bold italic",
		Expr:        regexp.MustCompile(`(?:\*|_){3}(.+?)(?:\*|_){3}`),
		Rewrite:     rewriteInline(wrapperEmphasis, delta.AttrBold, delta.AttrItalic),
	},
	{
		Name:        NameBold,
		Description: "**text** becomes bold",
		Expr:        regexp.MustCompile(`(?:\*|_){2}(.+?)(?:\*|_){2}`),
		Rewrite:     rewriteInline(wrapperEmphasis, delta.AttrBold),
	},
	{
		Name:        NameItalic,
		Description: "*text* becomes italic",
		Expr:        regexp.MustCompile(`(?:\*|_){1}(.+?)(?:\*|_){1}`),
		Rewrite:     rewriteInline(wrapperEmphasis, delta.AttrItalic),
	},
	{
		Name:        NameStrikethrough,
		Description: "~~text~~ becomes struck through",
		Expr:        regexp.MustCompile(`(?:~~)(.+?)(?:~~)`),
		Rewrite:     rewriteInline(wrapperStrike, delta.AttrStrike),
	},
	{
		Name:        NameCode,
		Description: "`text` becomes inline code",
		Expr:        regexp.MustCompile("(?:`)(.+?)(?:`)"),
		Rewrite:     rewriteCode,
	},
	{
		Name:        NameHR,
		Description: "--- at line start becomes a horizontal rule",
		Expr:        regexp.MustCompile(`^([-*]\s?){3}`),
		Rewrite:     rewriteHR,
	},
	{
		Name:        NamePlusUL,
		Description: "+ and a space on an empty line start an unordered list",
		Expr:        regexp.MustCompile(`^\+\s$`),
		Rewrite:     rewriteLine(delta.AttrList, "unordered"),
	},
	{
		Name:        NameAsteriskUL,
		Description: "- or * and a space on an empty line start a bullet list",
		Expr:        regexp.MustCompile(`^(\-|\*)\s$`),
		Rewrite:     rewriteLine(delta.AttrList, "bullet"),
	},
	{
		Name:        NameImage,
		Description: "![alt](url) becomes an image",
		Expr:        regexp.MustCompile(`(?:!\[(.+?)\])(?:\((.+?)\))`),
		Rewrite:     rewriteImage,
	},
	{
		Name:        NameLink,
		Description: "[text](url) becomes a link",
		Expr:        regexp.MustCompile(`(?:\[(.+?)\])(?:\((.+?)\))`),
		Rewrite:     rewriteLink,
	},
}

// AllPatterns returns every pattern in match order.
func AllPatterns() []Pattern {
	return slices.Clone(allPatterns)
}

// WithExclusions returns the patterns whose names are not in names, in match
// order. Unknown names are ignored.
func WithExclusions(names []string) []Pattern {
	out := make([]Pattern, 0, len(allPatterns))
	for _, p := range allPatterns {
		if slices.Contains(names, p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Names returns the names of every pattern in match order.
func Names() []string {
	names := make([]string, len(allPatterns))
	for i, p := range allPatterns {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the pattern called name.
func Lookup(name string) (Pattern, bool) {
	i := slices.IndexFunc(allPatterns, func(p Pattern) bool { return p.Name == name })
	if i < 0 {
		return Pattern{}, false
	}
	return allPatterns[i], true
}

func rewriteHeader(m Match) []Edit {
	level := strings.Count(m.Matched(), "#")
	return NewEditBuilder().
		FormatLine(m.Line.Start, delta.AttrHeader, level).
		Delete(m.Start(), m.Span()).
		Build()
}

func rewriteLine(name string, value any) RewriteFunc {
	return func(m Match) []Edit {
		return NewEditBuilder().
			FormatLine(m.Line.Start, name, value).
			Delete(m.Start(), m.Span()).
			Build()
	}
}

func rewriteInline(wrapper string, formats ...string) RewriteFunc {
	return func(m Match) []Edit {
		if wrapperOnly(m.Text, wrapper) || wrapperOnly(m.Matched(), wrapper) {
			return nil
		}
		attrs := make(delta.Attributes, len(formats))
		for _, name := range formats {
			attrs[name] = true
		}
		return NewEditBuilder().
			Delete(m.Start(), m.Span()).
			InsertText(m.Start(), m.Group(1), attrs).
			ClearCaret(formats...).
			Build()
	}
}

func rewriteCode(m Match) []Edit {
	if wrapperOnly(m.Text, wrapperCode) || wrapperOnly(m.Matched(), wrapperCode) {
		return nil
	}
	inner := m.Group(1)
	b := NewEditBuilder().
		Delete(m.Start(), m.Span()).
		InsertText(m.Start(), inner, delta.Attributes{delta.AttrCode: true})
	if !m.followedBySpace() {
		b.InsertText(m.Start()+runeLen(inner), " ", nil)
	}
	return b.ClearCaret(delta.AttrCode).Build()
}

// rewriteHR replaces the rule text with an hr embed and leaves the caret at
// the start of an empty line below it. Enter already created that line on
// the newline path.
func rewriteHR(m Match) []Edit {
	start, n := m.Start(), m.Span()
	b := NewEditBuilder().
		Delete(start, n).
		InsertEmbed(start, delta.EmbedHR, true)

	if m.Trigger == TriggerNewline {
		return b.Select(m.Caret - n + 1).Build()
	}
	return b.
		InsertText(start+1, "\n", nil).Silent().
		Select(start + 2).
		Build()
}

func rewriteImage(m Match) []Edit {
	return NewEditBuilder().
		Delete(m.Start(), m.Span()).
		InsertEmbed(m.Start(), delta.EmbedImage, m.Group(2)).
		Build()
}

func rewriteLink(m Match) []Edit {
	return NewEditBuilder().
		Delete(m.Start(), m.Span()).
		InsertText(m.Start(), m.Group(1), delta.Attributes{delta.AttrLink: m.Group(2)}).
		ClearCaret(delta.AttrLink).
		Build()
}

// wrapperOnly reports whether s holds nothing but wrapper characters and whitespace.
func wrapperOnly(s, wrapper string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !strings.ContainsRune(wrapper, r) {
			return false
		}
	}
	return true
}
