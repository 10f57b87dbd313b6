// internal/tui/editor_pane.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/scribe/internal/core"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// StyleSource supplies syntax styles per line.
type StyleSource interface {
	ForLine(line int) []types.StyledRange
}

// EditorPane draws the markdown source. Its scroll offset is measured in
// lines and it implements scroll.Viewport.
type EditorPane struct {
	editor          *core.Editor
	styles          StyleSource
	rect            Rect
	offset          float64
	leftCol         int // first visible visual column
	tabWidth        int
	showLineNumbers bool
	onScroll        func()
}

// NewEditorPane creates a pane over editor. styles may be nil.
func NewEditorPane(editor *core.Editor, styles StyleSource, tabWidth int) *EditorPane {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &EditorPane{editor: editor, styles: styles, tabWidth: tabWidth}
}

// SetOnScroll registers the callback run whenever the offset changes.
func (p *EditorPane) SetOnScroll(fn func()) {
	p.onScroll = fn
}

// SetRect places the pane on the screen.
func (p *EditorPane) SetRect(r Rect) {
	p.rect = r
	p.offset = clampOffset(p.offset, p.ScrollableRange())
}

// Rect returns the pane's screen region.
func (p *EditorPane) Rect() Rect { return p.rect }

// SetShowLineNumbers toggles the line number gutter.
func (p *EditorPane) SetShowLineNumbers(show bool) {
	p.showLineNumbers = show
}

// ShowLineNumbers reports whether the gutter is drawn.
func (p *EditorPane) ShowLineNumbers() bool { return p.showLineNumbers }

// ScrollOffset returns the index of the first visible line (possibly fractional
// after a sync from the preview).
func (p *EditorPane) ScrollOffset() float64 { return p.offset }

// ScrollableRange is the number of lines that do not fit the pane.
func (p *EditorPane) ScrollableRange() float64 {
	r := p.editor.LineCount() - p.rect.H
	if r < 0 {
		return 0
	}
	return float64(r)
}

// SetScrollOffset moves the view and notifies when the offset changed.
func (p *EditorPane) SetScrollOffset(offset float64) {
	offset = clampOffset(offset, p.ScrollableRange())
	if offset == p.offset {
		return
	}
	p.offset = offset
	if p.onScroll != nil {
		p.onScroll()
	}
}

// ScrollBy moves the view by delta lines.
func (p *EditorPane) ScrollBy(delta int) {
	p.SetScrollOffset(float64(p.TopLine() + delta))
}

// TopLine is the first line drawn.
func (p *EditorPane) TopLine() int {
	return int(math.Round(p.offset))
}

// LeftCol is the first visual column drawn.
func (p *EditorPane) LeftCol() int { return p.leftCol }

func (p *EditorPane) gutterWidth() int {
	if !p.showLineNumbers {
		return 0
	}
	digits := len(fmt.Sprint(p.editor.LineCount())) + 1
	if digits >= p.rect.W {
		return 0
	}
	return digits
}

func (p *EditorPane) textWidth() int {
	return p.rect.W - p.gutterWidth()
}

// EnsureCursorVisible scrolls just enough to bring the caret into view.
func (p *EditorPane) EnsureCursorVisible() {
	if p.rect.H <= 0 {
		return
	}
	cur := p.editor.CursorPosition()
	top := p.TopLine()
	switch {
	case cur.Line < top:
		p.SetScrollOffset(float64(cur.Line))
	case cur.Line >= top+p.rect.H:
		p.SetScrollOffset(float64(cur.Line - p.rect.H + 1))
	}

	w := p.textWidth()
	if w <= 0 {
		return
	}
	col := visualColumn(p.editor.Line(cur.Line), cur.Col, p.tabWidth)
	if col < p.leftCol {
		p.leftCol = col
	} else if col >= p.leftCol+w {
		p.leftCol = col - w + 1
	}
}

// ScreenToPosition maps a cell inside the pane to a document position.
func (p *EditorPane) ScreenToPosition(x, y int) (types.Position, bool) {
	if !p.rect.Contains(x, y) {
		return types.Position{}, false
	}
	line := p.TopLine() + y - p.rect.Y
	if last := p.editor.LineCount() - 1; line > last {
		line = last
	}
	visual := x - p.rect.X - p.gutterWidth() + p.leftCol
	if visual < 0 {
		visual = 0
	}
	return types.Position{Line: line, Col: runeAtVisual(p.editor.Line(line), visual, p.tabWidth)}, true
}

// Draw paints the visible lines and places the terminal cursor.
func (p *EditorPane) Draw(screen tcell.Screen, th *theme.Theme) {
	if p.rect.W <= 0 || p.rect.H <= 0 {
		return
	}
	defaultStyle := th.GetStyle("Default")
	lineNumberStyle := th.GetStyle("LineNumber")
	activeNumberStyle := th.GetStyle("LineNumberActive")
	selectionStyle := th.GetStyle("Selection")

	sel := p.editor.Selection().Normalize()
	cursor := p.editor.CursorPosition()
	gutter := p.gutterWidth()
	digits := gutter - 1
	right := p.rect.X + p.rect.W
	top := p.TopLine()
	lineCount := p.editor.LineCount()

	for row := 0; row < p.rect.H; row++ {
		y := p.rect.Y + row
		lineIdx := top + row
		for x := p.rect.X; x < right; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		if lineIdx >= lineCount {
			continue
		}

		if gutter > 0 {
			style := lineNumberStyle
			if lineIdx == cursor.Line {
				style = activeNumberStyle
			}
			for i, r := range fmt.Sprintf("%*d", digits, lineIdx+1) {
				screen.SetContent(p.rect.X+i, y, r, nil, style)
			}
		}

		text := p.editor.Line(lineIdx)
		lineStart := p.editor.PositionToOffset(types.Position{Line: lineIdx})
		ranges := p.lineStyles(lineIdx)
		textX := p.rect.X + gutter

		visual, runeIdx := 0, 0
		gr := uniseg.NewGraphemes(text)
		for gr.Next() {
			runes := gr.Runes()
			width := gr.Width()
			if runes[0] == '\t' {
				width = p.tabWidth - visual%p.tabWidth
			}
			if visual >= p.leftCol+p.textWidth() {
				break
			}

			style := defaultStyle
			// Parents come first, so the innermost matching range wins.
			for _, rg := range ranges {
				if runeIdx >= rg.StartCol && runeIdx < rg.EndCol {
					style = th.GetStyle(rg.StyleName)
				}
			}
			if off := lineStart + runeIdx; !sel.Empty() && off >= sel.Start && off < sel.End {
				style = selectionStyle
			}

			if visual >= p.leftCol {
				x := textX + visual - p.leftCol
				if runes[0] == '\t' {
					for i := 0; i < width && x+i < right; i++ {
						screen.SetContent(x+i, y, ' ', nil, style)
					}
				} else if x+width <= right {
					screen.SetContent(x, y, runes[0], runes[1:], style)
				}
			}
			visual += width
			runeIdx += len(runes)
		}
	}

	cx := p.rect.X + gutter + visualColumn(p.editor.Line(cursor.Line), cursor.Col, p.tabWidth) - p.leftCol
	cy := p.rect.Y + cursor.Line - top
	if cx < p.rect.X+gutter || cx >= right || cy < p.rect.Y || cy >= p.rect.Y+p.rect.H {
		screen.HideCursor()
	} else {
		screen.ShowCursor(cx, cy)
	}
}

func (p *EditorPane) lineStyles(line int) []types.StyledRange {
	if p.styles == nil {
		return nil
	}
	return p.styles.ForLine(line)
}

// visualColumn converts a rune column to a display column.
func visualColumn(line string, col, tabWidth int) int {
	visual, runeIdx := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() && runeIdx < col {
		runes := gr.Runes()
		if runes[0] == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual += gr.Width()
		}
		runeIdx += len(runes)
	}
	return visual
}

// runeAtVisual returns the rune column of the cluster covering a display
// column, or the line length past its end.
func runeAtVisual(line string, target, tabWidth int) int {
	visual, runeIdx := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if runes[0] == '\t' {
			width = tabWidth - visual%tabWidth
		}
		if target < visual+width {
			return runeIdx
		}
		visual += width
		runeIdx += len(runes)
	}
	return runeIdx
}

func clampOffset(offset, max float64) float64 {
	if offset > max {
		offset = max
	}
	if offset < 0 || math.IsNaN(offset) {
		offset = 0
	}
	return offset
}
