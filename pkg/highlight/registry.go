package highlight

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrUnknownLanguage is returned when enabling a language the registry does
// not know.
var ErrUnknownLanguage = errors.New("unknown language")

// DefaultLanguages are enabled in a new Registry.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultLanguages = []string{
	LangJavaScript, LangCSS, LangJSON, LangBash, LangPython,
	LangJava, LangCPP, LangSQL, LangXML,
}

//nolint:gochecknoglobals // Read-only set of languages that may be enabled.
var available = []string{
	LangBash, LangCPP, LangCSharp, LangCSS, LangDart, LangGo, LangJava,
	LangJavaScript, LangJSON, LangMatlab, LangObjectiveC, LangPHP, LangPython,
	LangR, LangRuby, LangScala, LangSQL, LangSwift, LangXML,
}

// Available returns every language a Registry can enable, sorted.
func Available() []string {
	return slices.Clone(available)
}

// Registry is the set of languages enabled for highlighting.
type Registry struct {
	enabled map[string]struct{}
}

// NewRegistry returns a Registry with DefaultLanguages enabled.
func NewRegistry() *Registry {
	r := &Registry{enabled: make(map[string]struct{}, len(available))}
	for _, lang := range DefaultLanguages {
		r.enabled[lang] = struct{}{}
	}
	return r
}

// NewRegistryWith returns a Registry with only the named languages enabled.
// Unknown names are reported the same way Enable reports them; the known
// ones are still enabled.
func NewRegistryWith(names ...string) (*Registry, error) {
	r := &Registry{enabled: make(map[string]struct{}, len(names))}
	return r, r.Enable(names...)
}

// Enable adds languages to the registry. Names are case-insensitive; unknown
// names are skipped and reported together in the returned error.
func (r *Registry) Enable(names ...string) error {
	var errs []error
	for _, name := range names {
		lang := strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(available, lang) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownLanguage, name))
			continue
		}
		r.enabled[lang] = struct{}{}
	}
	return errors.Join(errs...)
}

// Enabled reports whether lang is enabled.
func (r *Registry) Enabled(lang string) bool {
	_, ok := r.enabled[lang]
	return ok
}

// Languages returns the enabled languages, sorted.
func (r *Registry) Languages() []string {
	return slices.Sorted(maps.Keys(r.enabled))
}

// Label returns the detected language of code when it is enabled, else "".
func (r *Registry) Label(code []byte) string {
	lang := Detect(code)
	if !r.Enabled(lang) {
		return ""
	}
	return lang
}
