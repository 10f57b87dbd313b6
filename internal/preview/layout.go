package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/markdown"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// Options controls layout.
type Options struct {
	Width     int
	HardWraps bool
	Fallback  direction.Direction
}

type builder struct {
	src  []byte
	opts Options
	doc  *Document
}

// Layout parses src with engine and lays it out for a pane of opts.Width
// columns. Failures degrade to a single error line.
func Layout(engine *markdown.Engine, src string, opts Options) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("layout panic: %v", rec)
			logger.Errorf("Preview layout panicked: %v", rec)
			doc = ErrorDocument(err)
		}
	}()
	if engine == nil {
		err = fmt.Errorf("no markdown engine")
		return ErrorDocument(err), err
	}

	b := &builder{src: []byte(src), opts: opts, doc: &Document{}}
	root := engine.Parse(b.src)
	b.blocks(root, nil, nil, "", true)
	// Drop trailing blank rows.
	for n := len(b.doc.Lines); n > 0 && len(b.doc.Lines[n-1].Spans) == 0; n-- {
		b.doc.Lines = b.doc.Lines[:n-1]
	}
	return b.doc, nil
}

// ErrorDocument is the preview shown when markdown cannot be laid out.
func ErrorDocument(err error) *Document {
	return &Document{Lines: []Line{{Spans: []Span{{Text: markdown.RenderErrorMessage + ": " + err.Error(), Style: "markup.error"}}}}}
}

func (b *builder) add(spans []Span, dir direction.Direction) {
	b.doc.Lines = append(b.doc.Lines, Line{Spans: spans, Dir: dir})
}

func (b *builder) blank() {
	if n := len(b.doc.Lines); n > 0 && len(b.doc.Lines[n-1].Spans) != 0 {
		b.add(nil, b.opts.Fallback)
	}
}

// blocks lays out the children of a container. The first child's first row
// gets first; every other row gets rest.
func (b *builder) blocks(parent ast.Node, first, rest []Span, base string, spaced bool) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if spaced && child != parent.FirstChild() {
			b.blankWith(rest)
		}
		b.block(child, first, rest, base)
		first = rest
	}
}

// blankWith adds a separator row that still carries the container prefix.
func (b *builder) blankWith(prefix []Span) {
	if len(prefix) == 0 {
		b.blank()
		return
	}
	row := cloneSpans(prefix)
	trimTrailingSpace(row)
	b.add(row, b.opts.Fallback)
}

func (b *builder) dirOf(n ast.Node) direction.Direction {
	return direction.Detect(plainText(n, b.src), b.opts.Fallback)
}

func (b *builder) paragraph(n ast.Node, first, rest []Span, base string) {
	dir := b.dirOf(n)
	for i, line := range collectInline(n, b.src, base, b.opts.HardWraps) {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		for _, row := range wrapSpans(line, prefix, rest, b.opts.Width) {
			b.add(row, dir)
		}
	}
}

func (b *builder) block(n ast.Node, first, rest []Span, base string) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		b.paragraph(node, first, rest, base)

	case *ast.Heading:
		b.heading(node, first, rest)

	case *ast.Blockquote:
		bar := Span{Text: "│ ", Style: "markup.quote"}
		b.blocks(node, append(cloneSpans(first), bar), append(cloneSpans(rest), bar), "markup.quote", true)

	case *ast.List:
		b.list(node, first, rest, base)

	case *ast.FencedCodeBlock:
		lang := string(node.Language(b.src))
		b.code(node, lang, first, rest)

	case *ast.CodeBlock:
		b.code(node, "", first, rest)

	case *ast.ThematicBreak:
		width := b.opts.Width - spansWidth(first)
		if width < 3 {
			width = 3
		}
		b.add(appendSpan(cloneSpans(first), strings.Repeat("─", width), "markup.hr"), b.opts.Fallback)

	case *ast.HTMLBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			text := strings.TrimRight(string(seg.Value(b.src)), "\n")
			prefix := rest
			if i == 0 {
				prefix = first
			}
			b.add(appendSpan(cloneSpans(prefix), text, "markup.html"), b.opts.Fallback)
		}

	case *east.Table:
		b.table(node, first)

	default:
		b.blocks(n, first, rest, base, false)
	}
}

func (b *builder) heading(n *ast.Heading, first, rest []Span) {
	dir := b.dirOf(n)
	style := "markup.heading"
	marker := strings.Repeat("#", n.Level) + " "
	var rows [][]Span
	for i, line := range collectInline(n, b.src, style, false) {
		prefix := rest
		if i == 0 {
			prefix = appendSpan(cloneSpans(first), marker, "markup.heading.marker")
		}
		rows = append(rows, wrapSpans(line, prefix, rest, b.opts.Width)...)
	}
	width := 0
	for _, row := range rows {
		b.add(row, dir)
		if w := spansWidth(row) - spansWidth(rest); w > width {
			width = w
		}
	}
	if n.Level <= 2 && width > 0 {
		rule := "═"
		if n.Level == 2 {
			rule = "─"
		}
		b.add(appendSpan(cloneSpans(rest), strings.Repeat(rule, width), "markup.heading"), dir)
	}
}

func (b *builder) list(n *ast.List, first, rest []Span, base string) {
	number := n.Start
	if number == 0 {
		number = 1
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		}
		pad := Span{Text: strings.Repeat(" ", runewidth.StringWidth(marker)), Style: base}
		itemFirst := appendSpan(cloneSpans(first), marker, "markup.list")
		itemRest := append(cloneSpans(rest), pad)
		b.blocks(item, itemFirst, itemRest, base, !n.IsTight)
		first = rest
	}
}

func (b *builder) code(n ast.Node, lang string, first, rest []Span) {
	var src strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		src.Write(seg.Value(b.src))
	}
	for i, spans := range highlightCode(lang, src.String()) {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		row := append(cloneSpans(prefix), Span{Text: "  ", Style: "code"})
		row = append(row, spans...)
		b.add(row, direction.LTR)
	}
}

func (b *builder) table(n *east.Table, prefix []Span) {
	var rows [][]string
	header := -1
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		if _, ok := row.(*east.TableHeader); ok {
			header = len(rows)
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(plainText(cell, b.src)))
		}
		rows = append(rows, cells)
	}

	cols := len(n.Alignments)
	widths := make([]int, cols)
	for _, r := range rows {
		for i := 0; i < cols && i < len(r); i++ {
			if w := runewidth.StringWidth(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	dir := b.dirOf(n)
	for ri, r := range rows {
		style := "markup.table"
		if ri == header {
			style = "markup.table.header"
		}
		spans := cloneSpans(prefix)
		spans = appendSpan(spans, "│", "markup.table.border")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			spans = appendSpan(spans, " "+align(cell, widths[i], n.Alignments[i])+" ", style)
			spans = appendSpan(spans, "│", "markup.table.border")
		}
		b.add(spans, dir)
		if ri == header {
			sep := cloneSpans(prefix)
			parts := make([]string, cols)
			for i, w := range widths {
				parts[i] = strings.Repeat("─", w+2)
			}
			sep = appendSpan(sep, "├"+strings.Join(parts, "┼")+"┤", "markup.table.border")
			b.add(sep, dir)
		}
	}
}

func align(s string, width int, a east.Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch a {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + s
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	}
	return s + strings.Repeat(" ", gap)
}
