package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/mdshortcut/pkg/delta"
)

// NewMarkdownRenderer returns the goldmark instance HTML export uses:
// CommonMark plus the GitHub Flavored Markdown extensions.
func NewMarkdownRenderer() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
}

// HTML renders contents to HTML by way of Markdown.
func HTML(contents *delta.Delta, opts Options) (string, error) {
	md, err := Markdown(contents, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := NewMarkdownRenderer().Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// JSON returns contents as indented delta JSON.
func JSON(contents *delta.Delta) ([]byte, error) {
	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal contents: %w", err)
	}
	return append(data, '\n'), nil
}
