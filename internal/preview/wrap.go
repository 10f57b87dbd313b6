package preview

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

func spansWidth(spans []Span) int {
	w := 0
	for _, s := range spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// appendSpan adds text to spans, merging with the last span when the style
// matches.
func appendSpan(spans []Span, text, style string) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Style == style {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Style: style})
}

func cloneSpans(spans []Span) []Span {
	out := make([]Span, len(spans))
	copy(out, spans)
	return out
}

type piece struct {
	text  string
	style string
	space bool
}

// splitPieces cuts spans into alternating word and whitespace pieces.
func splitPieces(spans []Span) []piece {
	var out []piece
	for _, s := range spans {
		start := 0
		inSpace := false
		for i, r := range s.Text {
			sp := unicode.IsSpace(r)
			if i == 0 {
				inSpace = sp
				continue
			}
			if sp != inSpace {
				out = append(out, piece{text: s.Text[start:i], style: s.Style, space: inSpace})
				start = i
				inSpace = sp
			}
		}
		if start < len(s.Text) {
			out = append(out, piece{text: s.Text[start:], style: s.Style, space: inSpace})
		}
	}
	return out
}

// wrapSpans word-wraps content to width. first prefixes the first row and
// rest every following row. Words wider than a row are broken by rune.
func wrapSpans(content, first, rest []Span, width int) [][]Span {
	row := cloneSpans(first)
	rowWidth := spansWidth(first)
	restWidth := spansWidth(rest)
	var rows [][]Span
	hasContent := false

	newRow := func() {
		rows = append(rows, row)
		row = cloneSpans(rest)
		rowWidth = restWidth
		hasContent = false
	}

	for _, p := range splitPieces(content) {
		pw := runewidth.StringWidth(p.text)
		if p.space {
			if !hasContent {
				continue
			}
			if width > 0 && rowWidth+pw > width {
				newRow()
				continue
			}
			row = appendSpan(row, p.text, p.style)
			rowWidth += pw
			continue
		}
		if width > 0 && rowWidth+pw > width && hasContent {
			trimTrailingSpace(row)
			newRow()
		}
		text := p.text
		for width > 0 && rowWidth+runewidth.StringWidth(text) > width && width-rowWidth > 0 {
			head, tail := cutWidth(text, width-rowWidth)
			if head == "" {
				break
			}
			row = appendSpan(row, head, p.style)
			hasContent = true
			newRow()
			text = tail
		}
		row = appendSpan(row, text, p.style)
		rowWidth += runewidth.StringWidth(text)
		hasContent = hasContent || text != ""
	}
	trimTrailingSpace(row)
	rows = append(rows, row)
	return rows
}

// cutWidth splits s after at most w columns.
func cutWidth(s string, w int) (string, string) {
	cols := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if cols+rw > w {
			return s[:i], s[i:]
		}
		cols += rw
	}
	return s, ""
}

func trimTrailingSpace(row []Span) {
	if n := len(row); n > 0 {
		row[n-1].Text = strings.TrimRightFunc(row[n-1].Text, unicode.IsSpace)
	}
}
