// Package highlight labels code blocks with the language they are written in.
// Detection uses go-enry; a Registry limits labels to the languages a host
// has enabled for syntax highlighting.
package highlight

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers, matching the names highlighters use for fence tags.
const (
	LangBash       = "bash"
	LangCPP        = "cpp"
	LangCSharp     = "csharp"
	LangCSS        = "css"
	LangDart       = "dart"
	LangGo         = "go"
	LangJava       = "java"
	LangJavaScript = "javascript"
	LangJSON       = "json"
	LangMatlab     = "matlab"
	LangObjectiveC = "objectivec"
	LangPHP        = "php"
	LangPython     = "python"
	LangR          = "r"
	LangRuby       = "ruby"
	LangScala      = "scala"
	LangSQL        = "sql"
	LangSwift      = "swift"
	LangXML        = "xml"

	// LangText is returned when no language is recognised.
	LangText = "text"
)

// enryNames maps go-enry language names to identifiers. Languages missing
// here are lower-cased.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]string{
	"C++":         LangCPP,
	"C#":          LangCSharp,
	"Shell":       LangBash,
	"HTML":        LangXML,
	"XML":         LangXML,
	"Objective-C": LangObjectiveC,
	"MATLAB":      LangMatlab,
}

//nolint:gochecknoglobals // Classifier candidates, in enry naming.
var classifierCandidates = []string{
	"JavaScript", "CSS", "JSON", "Shell", "Python", "Java", "C++", "SQL",
	"XML", "HTML", "C#", "PHP", "Go", "Ruby", "Scala", "Swift", "Dart", "R",
}

// marker is a cheap textual signal that identifies a language outright.
type marker struct {
	lang  string
	match func(code, trimmed []byte) bool
}

//nolint:gochecknoglobals // Ordered from most to least specific.
var markers = []marker{
	{LangGo, func(_, t []byte) bool {
		return bytes.HasPrefix(t, []byte("package ")) && !bytes.Contains(t, []byte(";"))
	}},
	{LangPHP, func(_, t []byte) bool {
		return bytes.HasPrefix(t, []byte("<?php"))
	}},
	{LangXML, func(_, t []byte) bool {
		lower := bytes.ToLower(t)
		return bytes.HasPrefix(lower, []byte("<?xml")) ||
			bytes.Contains(lower, []byte("<!doctype html")) ||
			bytes.Contains(lower, []byte("<html"))
	}},
	{LangJSON, func(_, t []byte) bool {
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) &&
			bytes.Contains(t, []byte(`":`))
	}},
	{LangPython, func(c, _ []byte) bool {
		s := string(c)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__") ||
			(strings.Contains(s, "import ") && strings.Contains(s, "from "))
	}},
	{LangJava, func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("public static void main")) ||
			bytes.Contains(c, []byte("System.out.println"))
	}},
	{LangCPP, func(c, _ []byte) bool {
		return bytes.Contains(c, []byte("#include <")) || bytes.Contains(c, []byte("std::"))
	}},
	{LangSQL, func(_, t []byte) bool {
		upper := strings.ToUpper(string(t))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "ALTER "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{LangCSS, func(_, t []byte) bool {
		open := bytes.IndexByte(t, '{')
		return open > 0 && bytes.Contains(t[open:], []byte(":")) && bytes.Contains(t[open:], []byte(";")) &&
			!bytes.Contains(t[:open], []byte("("))
	}},
	{LangJavaScript, func(c, _ []byte) bool {
		s := string(c)
		return strings.Contains(s, "=>") || strings.Contains(s, "console.log") ||
			strings.Contains(s, "function ") || strings.Contains(s, "const ")
	}},
}

// Detect returns the language of code, or LangText when unsure. A shebang
// wins, then textual markers, then go-enry's classifier when it is confident.
func Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return normalize(lang)
	}

	for _, m := range markers {
		if m.match(code, trimmed) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

func normalize(lang string) string {
	if id, ok := enryNames[lang]; ok {
		return id
	}
	return strings.ToLower(lang)
}
