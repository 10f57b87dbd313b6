package tui

import (
	"testing"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/core"
	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/preview"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, x, y, n int) string {
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, _, _, _ := s.GetContent(x+i, y)
		out = append(out, r)
	}
	return string(out)
}

func newEditor(text string) *core.Editor {
	e := core.NewEditor(core.Options{Clock: clock.NewManual(time.Unix(0, 0))})
	e.Load("", text)
	return e
}

type fixedStyles map[int][]types.StyledRange

func (f fixedStyles) ForLine(line int) []types.StyledRange { return f[line] }

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(81, 25)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 40, H: 24}, l.Editor)
	assert.Equal(t, Rect{X: 40, Y: 0, W: 1, H: 24}, l.Separator)
	assert.Equal(t, Rect{X: 41, Y: 0, W: 40, H: 24}, l.Preview)
	assert.Equal(t, Rect{X: 0, Y: 24, W: 81, H: 1}, l.Status)

	narrow := ComputeLayout(2, 5)
	assert.Equal(t, 2, narrow.Editor.W)
	assert.Zero(t, narrow.Preview.W)
}

func TestEditorPaneScrolling(t *testing.T) {
	e := newEditor("1\n2\n3\n4\n5\n6\n7\n8\n9\n10")
	p := NewEditorPane(e, nil, 4)
	p.SetRect(Rect{W: 10, H: 4})
	notified := 0
	p.SetOnScroll(func() { notified++ })

	assert.Equal(t, 6.0, p.ScrollableRange())
	p.SetScrollOffset(100)
	assert.Equal(t, 6.0, p.ScrollOffset())
	assert.Equal(t, 1, notified)

	p.SetScrollOffset(6)
	assert.Equal(t, 1, notified, "no notification without movement")

	e.MoveDocStart(false)
	p.EnsureCursorVisible()
	assert.Equal(t, 0, p.TopLine())
	assert.Equal(t, 2, notified)

	e.MoveTo(types.Position{Line: 7}, false)
	p.EnsureCursorVisible()
	assert.Equal(t, 4, p.TopLine())
}

func TestEditorPaneDraw(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	e := newEditor("# Hi\nbody")
	p := NewEditorPane(e, fixedStyles{0: {{StartCol: 0, EndCol: 1, StyleName: "markup.heading.marker"}}}, 4)
	p.SetRect(Rect{W: 20, H: 4})
	p.SetShowLineNumbers(true)
	th := &theme.Light

	p.Draw(s, th)
	assert.Equal(t, "1 # Hi", rowText(s, 0, 0, 6))
	assert.Equal(t, "2 body", rowText(s, 0, 1, 6))

	_, _, style, _ := s.GetContent(2, 0)
	assert.Equal(t, th.GetStyle("markup.heading.marker"), style)

	e.SetSelection(types.Selection{Start: 5, End: 7})
	p.Draw(s, th)
	_, _, style, _ = s.GetContent(2, 1)
	assert.Equal(t, th.GetStyle("Selection"), style)
}

func TestEditorPaneScreenToPosition(t *testing.T) {
	e := newEditor("a\tb\nwide 世界")
	p := NewEditorPane(e, nil, 4)
	p.SetRect(Rect{X: 0, Y: 0, W: 20, H: 5})

	pos, ok := p.ScreenToPosition(2, 0)
	require.True(t, ok)
	assert.Equal(t, types.Position{Line: 0, Col: 1}, pos, "inside the tab")

	pos, ok = p.ScreenToPosition(4, 0)
	require.True(t, ok)
	assert.Equal(t, types.Position{Line: 0, Col: 2}, pos, "first cell after the tab stop")

	pos, ok = p.ScreenToPosition(8, 1)
	require.True(t, ok)
	assert.Equal(t, types.Position{Line: 1, Col: 6}, pos, "second column of a wide rune")

	pos, ok = p.ScreenToPosition(3, 4)
	require.True(t, ok)
	assert.Equal(t, 1, pos.Line, "rows below the text map to the last line")

	_, ok = p.ScreenToPosition(25, 0)
	assert.False(t, ok)
}

func TestPreviewPaneDrawsRTLRightAligned(t *testing.T) {
	s := newSimScreen(t, 10, 3)
	p := NewPreviewPane()
	p.SetRect(Rect{W: 10, H: 3})
	p.SetDocument(&preview.Document{Lines: []preview.Line{
		{Spans: []preview.Span{{Text: "left"}}, Dir: direction.LTR},
		{Spans: []preview.Span{{Text: "سلام", Style: "markup.bold"}}, Dir: direction.RTL},
	}})
	p.Draw(s, &theme.Light)

	assert.Equal(t, "left      ", rowText(s, 0, 0, 10))
	assert.Equal(t, "      سلام", rowText(s, 0, 1, 10))
}

func TestPreviewPaneClampsOnNewDocument(t *testing.T) {
	p := NewPreviewPane()
	p.SetRect(Rect{W: 10, H: 2})
	lines := make([]preview.Line, 10)
	p.SetDocument(&preview.Document{Lines: lines})
	p.SetScrollOffset(8)
	assert.Equal(t, 8.0, p.ScrollOffset())

	p.SetDocument(&preview.Document{Lines: lines[:4]})
	assert.Equal(t, 2.0, p.ScrollOffset())

	p.SetDocument(nil)
	assert.Zero(t, p.ScrollableRange())
	assert.Zero(t, p.ScrollOffset())
}
