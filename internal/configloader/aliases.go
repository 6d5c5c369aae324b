package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/mdshortcut/pkg/keyboard"
	"github.com/yaklabco/mdshortcut/pkg/shortcut"
)

// patternAliases maps alternative spellings users reach for to canonical
// pattern names, so configs written with CommonMark vocabulary still work.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patternAliases = map[string]string{
	"heading":         shortcut.NameHeader,
	"atx-heading":     shortcut.NameHeader,
	"quote":           shortcut.NameBlockquote,
	"codeblock":       shortcut.NameCodeBlock,
	"fenced-code":     shortcut.NameCodeBlock,
	"bold-italic":     shortcut.NameBoldItalic,
	"strong-emphasis": shortcut.NameBoldItalic,
	"strong":          shortcut.NameBold,
	"emphasis":        shortcut.NameItalic,
	"em":              shortcut.NameItalic,
	"strike":          shortcut.NameStrikethrough,
	"del":             shortcut.NameStrikethrough,
	"inline-code":     shortcut.NameCode,
	"thematic-break":  shortcut.NameHR,
	"horizontal-rule": shortcut.NameHR,
	"rule":            shortcut.NameHR,
	"unordered-list":  shortcut.NamePlusUL,
	"bullet-list":     shortcut.NameAsteriskUL,
	"dash-list":       shortcut.NameAsteriskUL,
	"img":             shortcut.NameImage,
	"anchor":          shortcut.NameLink,
}

// bindingAliases maps shorthand binding names to canonical ones.
//
//nolint:gochecknoglobals // Read-only lookup table.
var bindingAliases = map[string]string{
	"autofill":        keyboard.BindingListAutofill,
	"list-autofill":   keyboard.BindingListAutofill,
	"backspace":       keyboard.BindingBlockBackspace,
	"block-backspace": keyboard.BindingBlockBackspace,
	"ctrl+s":          keyboard.BindingSave,
}

// ResolvePattern returns the canonical pattern name for name or one of its
// aliases. Matching is case-insensitive.
func ResolvePattern(name string) (string, bool) {
	return resolve(name, shortcut.Names(), patternAliases)
}

// ResolveBinding returns the canonical binding name for name or one of its
// aliases. Matching is case-insensitive.
func ResolveBinding(name string) (string, bool) {
	return resolve(name, keyboard.Names(), bindingAliases)
}

// PatternAliases returns the aliases that resolve to the given pattern.
func PatternAliases(name string) []string {
	var aliases []string
	for alias, canonical := range patternAliases {
		if canonical == name {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}

func resolve(name string, canonical []string, aliases map[string]string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(canonical, key) {
		return key, true
	}
	if target, ok := aliases[key]; ok {
		return target, true
	}
	return "", false
}
