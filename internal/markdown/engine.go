// Package markdown converts markdown to HTML with goldmark. It keeps the
// renderer behind a small interface so the rest of the editor never depends
// on the parser directly.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrUnknownParser is returned for a parser name that is not registered.
var ErrUnknownParser = errors.New("unknown markdown parser")

const (
	ParserGFM        = "gfm"
	ParserCommonMark = "commonmark"
)

// Renderer turns markdown into an HTML fragment.
type Renderer interface {
	Render(src string) (string, error)
}

// Options tunes an Engine.
type Options struct {
	HardWraps bool   // single newlines become <br>
	CodeStyle string // chroma style for fenced code, e.g. "github"
}

// Engine is a configured goldmark instance.
type Engine struct {
	name string
	md   goldmark.Markdown
}

type builder func(opts Options) goldmark.Markdown

var registry = map[string]builder{
	ParserGFM: func(opts Options) goldmark.Markdown {
		return goldmark.New(
			goldmark.WithExtensions(extension.GFM, codeHighlighting(opts)),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOptions(opts)...),
		)
	},
	ParserCommonMark: func(opts Options) goldmark.Markdown {
		return goldmark.New(
			goldmark.WithExtensions(codeHighlighting(opts)),
			goldmark.WithRendererOptions(rendererOptions(opts)...),
		)
	},
}

func codeHighlighting(opts Options) goldmark.Extender {
	style := opts.CodeStyle
	if style == "" {
		style = "github"
	}
	return highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
	)
}

func rendererOptions(opts Options) []renderer.Option {
	out := []renderer.Option{html.WithXHTML()}
	if opts.HardWraps {
		out = append(out, html.WithHardWraps())
	}
	return out
}

// Parsers lists the registered parser names.
func Parsers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the engine registered under name.
func New(name string, opts Options) (*Engine, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	build, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
	}
	return &Engine{name: key, md: build(opts)}, nil
}

// Name returns the parser name.
func (e *Engine) Name() string {
	return e.name
}

// Render converts src to an HTML fragment.
func (e *Engine) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Parse returns the document AST for src. Node segments index into src.
func (e *Engine) Parse(src []byte) ast.Node {
	return e.md.Parser().Parse(text.NewReader(src))
}
