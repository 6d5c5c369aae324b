package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdshortcut/pkg/delta"
	"github.com/yaklabco/mdshortcut/pkg/export"
	"github.com/yaklabco/mdshortcut/pkg/highlight"
)

func sampleContents() *delta.Delta {
	return delta.New().
		Insert("Title", nil).
		Insert("\n", delta.Attributes{delta.AttrHeader: 2}).
		Insert("plain ", nil).
		Insert("bold", delta.Attributes{delta.AttrBold: true}).
		Insert(" and ", nil).
		Insert("both", delta.Attributes{delta.AttrBold: true, delta.AttrItalic: true}).
		Insert(" ", nil).
		Insert("em", delta.Attributes{delta.AttrItalic: true}).
		Insert(" ", nil).
		Insert("gone", delta.Attributes{delta.AttrStrike: true}).
		Insert(" ", nil).
		Insert("x := 1", delta.Attributes{delta.AttrCode: true}).
		Insert(" ", nil).
		Insert("go", delta.Attributes{delta.AttrLink: "https://go.dev"}).
		Insert("\n", nil).
		Insert("one", nil).
		Insert("\n", delta.Attributes{delta.AttrList: "bullet"}).
		Insert("two", nil).
		Insert("\n", delta.Attributes{delta.AttrList: "bullet"}).
		Insert("first", nil).
		Insert("\n", delta.Attributes{delta.AttrList: "ordered-3"}).
		Insert("second", nil).
		Insert("\n", delta.Attributes{delta.AttrList: "ordered-3"}).
		Insert("quoted", nil).
		Insert("\n", delta.Attributes{delta.AttrBlockquote: true}).
		InsertEmbed(delta.EmbedHR, true, nil).
		Insert("\n", nil).
		InsertEmbed(delta.EmbedImage, "http://x/y.png", nil).
		Insert("\n", nil).
		Insert("package main", nil).
		Insert("\n", delta.Attributes{delta.AttrCodeBlock: true}).
		Insert("\n", nil)
}

func goRegistry(t *testing.T) *highlight.Registry {
	t.Helper()
	reg := highlight.NewRegistry()
	require.NoError(t, reg.Enable(highlight.LangGo))
	return reg
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	got, err := export.Markdown(sampleContents(), export.Options{Languages: goRegistry(t)})
	require.NoError(t, err)

	want := "## Title\n\n" +
		"plain **bold** and ***both*** _em_ ~~gone~~ `x := 1` [go](https://go.dev)\n\n" +
		"- one\n- two\n\n" +
		"3. first\n4. second\n\n" +
		"> quoted\n\n" +
		"---\n\n" +
		"![](http://x/y.png)\n\n" +
		"```go\npackage main\n```\n"
	assert.Equal(t, want, got)
}

func TestMarkdown_UnlabelledFence(t *testing.T) {
	t.Parallel()

	contents := delta.New().
		Insert("package main", nil).
		Insert("\n", delta.Attributes{delta.AttrCodeBlock: true})

	got, err := export.Markdown(contents, export.Options{})
	require.NoError(t, err)
	assert.Equal(t, "```\npackage main\n```\n", got)
}

func TestMarkdown_Escaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading marker", "# not a heading", `\# not a heading` + "\n"},
		{"emphasis chars", "a *b* _c_", `a \*b\* \_c\_` + "\n"},
		{"ordered marker", "1. nope", `1\. nope` + "\n"},
		{"dash", "- nope", `\- nope` + "\n"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := export.Markdown(delta.New().Insert(tc.in+"\n", nil), export.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMarkdown_RejectsNonInsert(t *testing.T) {
	t.Parallel()

	_, err := export.Markdown(delta.New().Retain(3, nil), export.Options{})
	assert.Error(t, err)
}

func TestMarkdown_ParsesBack(t *testing.T) {
	t.Parallel()

	md, err := export.Markdown(sampleContents(), export.Options{})
	require.NoError(t, err)

	src := []byte(md)
	root := export.NewMarkdownRenderer().Parser().Parse(text.NewReader(src))

	kinds := map[ast.NodeKind]int{}
	var headingLevel int
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		kinds[n.Kind()]++
		if h, ok := n.(*ast.Heading); ok {
			headingLevel = h.Level
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, headingLevel)
	assert.Equal(t, 2, kinds[ast.KindList])
	assert.Equal(t, 4, kinds[ast.KindListItem])
	assert.Equal(t, 1, kinds[ast.KindBlockquote])
	assert.Equal(t, 1, kinds[ast.KindThematicBreak])
	assert.Equal(t, 1, kinds[ast.KindImage])
	assert.Equal(t, 1, kinds[ast.KindFencedCodeBlock])
	assert.Equal(t, 1, kinds[ast.KindLink])
}

func TestHTML(t *testing.T) {
	t.Parallel()

	got, err := export.HTML(sampleContents(), export.Options{Languages: goRegistry(t)})
	require.NoError(t, err)

	for _, want := range []string{
		"<h2>Title</h2>",
		"<strong>bold</strong>",
		"<em>em</em>",
		"<del>gone</del>",
		"<code>x := 1</code>",
		`<a href="https://go.dev">go</a>`,
		`<ol start="3">`,
		"<blockquote>",
		"<hr>",
		`<img src="http://x/y.png" alt="">`,
		`<code class="language-go">`,
	} {
		assert.Contains(t, got, want)
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	contents := sampleContents()
	data, err := export.JSON(contents)
	require.NoError(t, err)

	var back delta.Delta
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, contents.Length(), back.Length())
	assert.Len(t, back.Ops, len(contents.Ops))
}
