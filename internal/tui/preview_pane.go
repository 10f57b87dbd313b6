// internal/tui/preview_pane.go
package tui

import (
	"math"

	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/preview"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// PreviewPane draws a laid out preview document. Like the editor pane it
// scrolls by lines and implements scroll.Viewport.
type PreviewPane struct {
	doc      *preview.Document
	rect     Rect
	offset   float64
	onScroll func()
}

// NewPreviewPane creates an empty preview pane.
func NewPreviewPane() *PreviewPane {
	return &PreviewPane{doc: &preview.Document{}}
}

// SetOnScroll registers the callback run whenever the offset changes.
func (p *PreviewPane) SetOnScroll(fn func()) {
	p.onScroll = fn
}

// SetRect places the pane on the screen.
func (p *PreviewPane) SetRect(r Rect) {
	p.rect = r
	p.offset = clampOffset(p.offset, p.ScrollableRange())
}

// Rect returns the pane's screen region.
func (p *PreviewPane) Rect() Rect { return p.rect }

// SetDocument replaces the content, keeping the offset where possible.
func (p *PreviewPane) SetDocument(doc *preview.Document) {
	if doc == nil {
		doc = &preview.Document{}
	}
	p.doc = doc
	p.offset = clampOffset(p.offset, p.ScrollableRange())
}

// Document returns the content being shown.
func (p *PreviewPane) Document() *preview.Document { return p.doc }

// ScrollOffset returns the first visible row.
func (p *PreviewPane) ScrollOffset() float64 { return p.offset }

// ScrollableRange is the number of rows that do not fit the pane.
func (p *PreviewPane) ScrollableRange() float64 {
	r := len(p.doc.Lines) - p.rect.H
	if r < 0 {
		return 0
	}
	return float64(r)
}

// SetScrollOffset moves the view and notifies when the offset changed.
func (p *PreviewPane) SetScrollOffset(offset float64) {
	offset = clampOffset(offset, p.ScrollableRange())
	if offset == p.offset {
		return
	}
	p.offset = offset
	if p.onScroll != nil {
		p.onScroll()
	}
}

// ScrollBy moves the view by delta rows.
func (p *PreviewPane) ScrollBy(delta int) {
	p.SetScrollOffset(float64(p.TopLine() + delta))
}

// TopLine is the first row drawn.
func (p *PreviewPane) TopLine() int {
	return int(math.Round(p.offset))
}

// Draw paints the visible rows. Right-to-left rows are right aligned.
func (p *PreviewPane) Draw(screen tcell.Screen, th *theme.Theme) {
	if p.rect.W <= 0 || p.rect.H <= 0 {
		return
	}
	defaultStyle := th.GetStyle("Default")
	right := p.rect.X + p.rect.W
	top := p.TopLine()

	for row := 0; row < p.rect.H; row++ {
		y := p.rect.Y + row
		for x := p.rect.X; x < right; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		idx := top + row
		if idx >= len(p.doc.Lines) {
			continue
		}
		line := p.doc.Lines[idx]
		x := p.rect.X
		if line.Dir == direction.RTL {
			if w := line.Width(); w < p.rect.W {
				x = right - w
			}
		}
		for _, span := range line.Spans {
			style := defaultStyle
			if span.Style != "" {
				style = th.GetStyle(span.Style)
			}
			gr := uniseg.NewGraphemes(span.Text)
			for gr.Next() {
				runes := gr.Runes()
				width := gr.Width()
				if x+width > right {
					break
				}
				screen.SetContent(x, y, runes[0], runes[1:], style)
				x += width
			}
		}
	}
}
