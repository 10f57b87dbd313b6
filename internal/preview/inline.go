package preview

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// inlineCollector flattens inline nodes into logical lines of spans.
type inlineCollector struct {
	src       []byte
	hardWraps bool
	lines     [][]Span
	current   []Span
}

func (c *inlineCollector) add(text, style string) {
	c.current = appendSpan(c.current, text, style)
}

func (c *inlineCollector) breakLine() {
	c.lines = append(c.lines, c.current)
	c.current = nil
}

func (c *inlineCollector) finish() [][]Span {
	c.lines = append(c.lines, c.current)
	c.current = nil
	return c.lines
}

// collectInline returns the logical lines of a block's inline content.
func collectInline(n ast.Node, src []byte, base string, hardWraps bool) [][]Span {
	c := &inlineCollector{src: src, hardWraps: hardWraps}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.walk(child, base)
	}
	return c.finish()
}

func (c *inlineCollector) walkChildren(n ast.Node, style string) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.walk(child, style)
	}
}

func (c *inlineCollector) walk(n ast.Node, style string) {
	switch node := n.(type) {
	case *ast.Text:
		c.add(string(node.Segment.Value(c.src)), style)
		switch {
		case node.HardLineBreak():
			c.breakLine()
		case node.SoftLineBreak():
			if c.hardWraps {
				c.breakLine()
			} else {
				c.add(" ", style)
			}
		}
	case *ast.String:
		c.add(string(node.Value), style)
	case *ast.Emphasis:
		s := "markup.italic"
		if node.Level >= 2 {
			s = "markup.bold"
		}
		c.walkChildren(node, s)
	case *east.Strikethrough:
		c.walkChildren(node, "markup.strikethrough")
	case *ast.CodeSpan:
		c.add(plainText(node, c.src), "markup.code")
	case *ast.Link:
		label := plainText(node, c.src)
		c.walkChildren(node, "markup.link")
		if dest := string(node.Destination); dest != "" && dest != label {
			c.add(" ("+dest+")", "markup.link.url")
		}
	case *ast.AutoLink:
		c.add(string(node.URL(c.src)), "markup.link")
	case *ast.Image:
		alt := plainText(node, c.src)
		if alt == "" {
			alt = string(node.Destination)
		}
		c.add("[image: "+alt+"]", "markup.link")
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		c.add(b.String(), "markup.html")
	case *east.TaskCheckBox:
		if node.IsChecked {
			c.add("[x] ", "markup.list")
		} else {
			c.add("[ ] ", "markup.list")
		}
	default:
		c.walkChildren(n, style)
	}
}

// plainText concatenates the text below n, ignoring styling.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
