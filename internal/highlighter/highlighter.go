// Package highlighter computes editor-pane syntax styles for markdown with
// the tree-sitter markdown grammars.
package highlighter

import (
	"context"
	"fmt"
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/bethropolis/scribe/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
	mdblock "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	mdinline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"
)

// HighlightResult maps a 0-based line number to its styled ranges.
type HighlightResult = types.LineStyles

// blockStyles maps block grammar node types to theme style names.
var blockStyles = map[string]string{
	"atx_heading":                 "markup.heading",
	"setext_heading":              "markup.heading",
	"atx_h1_marker":               "markup.heading.marker",
	"atx_h2_marker":               "markup.heading.marker",
	"atx_h3_marker":               "markup.heading.marker",
	"atx_h4_marker":               "markup.heading.marker",
	"atx_h5_marker":               "markup.heading.marker",
	"atx_h6_marker":               "markup.heading.marker",
	"setext_h1_underline":         "markup.heading.marker",
	"setext_h2_underline":         "markup.heading.marker",
	"fenced_code_block":           "markup.codeblock",
	"indented_code_block":         "markup.codeblock",
	"fenced_code_block_delimiter": "markup.delimiter",
	"info_string":                 "markup.code.info",
	"block_quote_marker":          "markup.quote",
	"block_continuation":          "markup.quote",
	"list_marker_minus":           "markup.list",
	"list_marker_plus":            "markup.list",
	"list_marker_star":            "markup.list",
	"list_marker_dot":             "markup.list",
	"list_marker_parenthesis":     "markup.list",
	"task_list_marker_checked":    "markup.list.task",
	"task_list_marker_unchecked":  "markup.list.task",
	"thematic_break":              "markup.hr",
	"pipe_table_header":           "markup.table.header",
	"pipe_table_delimiter_row":    "markup.table.border",
	"|":                           "markup.table.border",
	"link_reference_definition":   "markup.link",
	"html_block":                  "markup.html",
}

// inlineStyles maps inline grammar node types to theme style names.
var inlineStyles = map[string]string{
	"emphasis":                 "markup.italic",
	"strong_emphasis":          "markup.bold",
	"strikethrough":            "markup.strikethrough",
	"code_span":                "markup.code",
	"inline_link":              "markup.link",
	"full_reference_link":      "markup.link",
	"collapsed_reference_link": "markup.link",
	"shortcut_link":            "markup.link",
	"image":                    "markup.link",
	"link_destination":         "markup.link.url",
	"uri_autolink":             "markup.link.url",
	"email_autolink":           "markup.link.url",
	"html_tag":                 "markup.html",
	"emphasis_delimiter":       "markup.delimiter",
	"code_span_delimiter":      "markup.delimiter",
}

// Highlighter parses markdown and produces styled ranges per line.
// Parsers are not safe for concurrent use, so calls are serialised.
type Highlighter struct {
	mu     sync.Mutex
	block  *sitter.Parser
	inline *sitter.Parser
}

// NewHighlighter creates a highlighter with both markdown grammars loaded.
func NewHighlighter() *Highlighter {
	block := sitter.NewParser()
	block.SetLanguage(mdblock.GetLanguage())
	inline := sitter.NewParser()
	inline.SetLanguage(mdinline.GetLanguage())
	return &Highlighter{block: block, inline: inline}
}

// Highlight parses src and returns its line styles. Parents come before
// their children in each line's slice, so later ranges should win when
// painting.
func (h *Highlighter) Highlight(ctx context.Context, src []byte) (HighlightResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tree, err := h.block.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown blocks: %w", err)
	}
	defer tree.Close()

	lines := utils.SplitLines(src)
	result := make(HighlightResult)
	var inlineRanges []sitter.Range

	walk(tree.RootNode(), func(n *sitter.Node) {
		t := n.Type()
		if t == "inline" || t == "pipe_table_cell" {
			inlineRanges = append(inlineRanges, sitter.Range{
				StartPoint: n.StartPoint(),
				EndPoint:   n.EndPoint(),
				StartByte:  n.StartByte(),
				EndByte:    n.EndByte(),
			})
		}
		if style, ok := blockStyles[t]; ok {
			addNode(result, lines, n, style)
		}
	})

	if len(inlineRanges) > 0 {
		h.inline.SetIncludedRanges(inlineRanges)
		inlineTree, err := h.inline.ParseCtx(ctx, nil, src)
		if err != nil {
			return nil, fmt.Errorf("parsing markdown inlines: %w", err)
		}
		defer inlineTree.Close()
		walk(inlineTree.RootNode(), func(n *sitter.Node) {
			if style, ok := inlineStyles[n.Type()]; ok {
				addNode(result, lines, n, style)
			}
		})
	}

	logger.DebugTagf("highlight", "Highlighted %d lines (%d inline ranges)", len(result), len(inlineRanges))
	return result, nil
}

// walk visits n and its descendants depth first, parents before children.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		walk(n.Child(i), visit)
	}
}

// addNode records n's extent, split into one range per line it covers.
func addNode(result HighlightResult, lines [][]byte, n *sitter.Node, style string) {
	start, end := n.StartPoint(), n.EndPoint()
	startLine, endLine := int(start.Row), int(end.Row)
	for line := startLine; line <= endLine && line < len(lines); line++ {
		text := lines[line]
		from := 0
		if line == startLine {
			from = utils.ByteOffsetToRuneIndex(text, int(start.Column))
		}
		to := utils.ByteOffsetToRuneIndex(text, len(text))
		if line == endLine {
			to = utils.ByteOffsetToRuneIndex(text, int(end.Column))
		}
		if to <= from {
			continue
		}
		result[line] = append(result[line], types.StyledRange{StartCol: from, EndCol: to, StyleName: style})
	}
}
