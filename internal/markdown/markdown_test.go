package markdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
)

func TestGFMExtensions(t *testing.T) {
	e, err := New("GFM", Options{HardWraps: true})
	require.NoError(t, err)
	assert.Equal(t, ParserGFM, e.Name())

	out, err := e.Render("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n\n- [x] done\n\nline one\nline two\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, `type="checkbox"`)
	assert.Contains(t, out, "line one<br />")
}

func TestCommonMarkIsStrict(t *testing.T) {
	e, err := New(ParserCommonMark, Options{})
	require.NoError(t, err)

	out, err := e.Render("| a | b |\n|---|---|\n\n~~kept~~\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "<table>")
	assert.Contains(t, out, "~~kept~~")
}

func TestFencedCodeIsHighlighted(t *testing.T) {
	e, err := New(ParserGFM, Options{})
	require.NoError(t, err)

	out, err := e.Render("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "style=")
}

func TestUnknownParser(t *testing.T) {
	_, err := New("textile", Options{})
	assert.True(t, errors.Is(err, ErrUnknownParser))
	assert.Equal(t, []string{"commonmark", "gfm"}, Parsers())
}

func TestParseGivesDocumentNode(t *testing.T) {
	e, err := New(ParserGFM, Options{})
	require.NoError(t, err)
	doc := e.Parse([]byte("# Title\n\ntext\n"))
	require.Equal(t, ast.KindDocument, doc.Kind())
	assert.Equal(t, ast.KindHeading, doc.FirstChild().Kind())
}

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) { panic("kaboom") }

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) { return "", errors.New("bad input") }

func TestSafeRenderDegrades(t *testing.T) {
	out, err := SafeRender(panicRenderer{}, "x")
	assert.Error(t, err)
	assert.Contains(t, out, RenderErrorMessage)
	assert.Contains(t, out, "kaboom")

	out, err = SafeRender(failingRenderer{}, "x")
	assert.Error(t, err)
	assert.Contains(t, out, "bad input")

	out, err = SafeRender(nil, "x")
	assert.Error(t, err)
	assert.Contains(t, out, RenderErrorMessage)

	e, _ := New(ParserGFM, Options{})
	out, err = SafeRender(e, "**ok**")
	assert.NoError(t, err)
	assert.Contains(t, out, "<strong>ok</strong>")
}

func TestHTMLDocument(t *testing.T) {
	doc, err := HTMLDocument("<p>سلام</p>", DocumentOptions{})
	require.NoError(t, err)
	page := string(doc)
	assert.Contains(t, page, `<html lang="fa" dir="rtl">`)
	assert.Contains(t, page, "font-family: 'Vazirmatn'")
	assert.Contains(t, page, "<p>سلام</p>")
	assert.Contains(t, page, "<title>Document</title>")

	doc, err = HTMLDocument("<p>hi</p>", DocumentOptions{Dir: "ltr", Font: "Inter", Title: "a <b>"})
	require.NoError(t, err)
	page = string(doc)
	assert.Contains(t, page, `<html lang="en" dir="ltr">`)
	assert.Contains(t, page, "text-align: left")
	assert.Contains(t, page, "<title>a &lt;b&gt;</title>")
}
