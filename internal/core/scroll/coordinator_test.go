package scroll

import (
	"testing"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/stretchr/testify/assert"
)

// pane is a Viewport that, like a real scrolling surface, notifies its
// listener whenever its offset changes.
type pane struct {
	offset   float64
	rng      float64
	onScroll func()
	writes   int
}

func (p *pane) ScrollOffset() float64    { return p.offset }
func (p *pane) ScrollableRange() float64 { return p.rng }
func (p *pane) SetScrollOffset(o float64) {
	p.offset = o
	p.writes++
	if p.onScroll != nil {
		p.onScroll()
	}
}

func newPair(editorRange, previewRange float64) (*pane, *pane, *Coordinator, *clock.Manual) {
	clk := clock.NewManual(time.Unix(0, 0))
	ed := &pane{rng: editorRange}
	pv := &pane{rng: previewRange}
	c := NewCoordinator(ed, pv, clk, 50*time.Millisecond, nil)
	ed.onScroll = func() { c.HandleScroll(SideEditor) }
	pv.onScroll = func() { c.HandleScroll(SidePreview) }
	return ed, pv, c, clk
}

func TestRatioRoundTrip(t *testing.T) {
	for _, r := range []float64{0, 0.25, 0.5, 0.8, 1} {
		ed, pv, _, clk := newPair(400, 1000)
		ed.SetScrollOffset(r * ed.ScrollableRange())
		assert.InDelta(t, r*pv.ScrollableRange(), pv.ScrollOffset(), 1e-9, "ratio %v", r)
		clk.Advance(time.Second)

		pv.SetScrollOffset(r * pv.ScrollableRange())
		assert.InDelta(t, r*ed.ScrollableRange(), ed.ScrollOffset(), 1e-9, "ratio %v", r)
	}
}

func TestNoFeedbackLoop(t *testing.T) {
	ed, pv, c, _ := newPair(100, 300)

	ed.offset = 50
	assert.True(t, c.HandleScroll(SideEditor))

	assert.Equal(t, 150.0, pv.offset)
	assert.Equal(t, 1, pv.writes)
	assert.Equal(t, 0, ed.writes, "echo from the preview must not write back")
	assert.Equal(t, 50.0, ed.offset)
}

func TestSuppressFlagClearedByTimer(t *testing.T) {
	ed, _, c, clk := newPair(100, 300)
	c.panes[SidePreview].(*pane).onScroll = nil // deferred notification never arrives

	ed.offset = 10
	c.HandleScroll(SideEditor)
	assert.True(t, c.Suppressed(SidePreview))

	clk.Advance(49 * time.Millisecond)
	assert.True(t, c.Suppressed(SidePreview))
	clk.Advance(time.Millisecond)
	assert.False(t, c.Suppressed(SidePreview))
}

func TestNonScrollableSidesAreNoOps(t *testing.T) {
	ed, pv, c, _ := newPair(0, 300)
	assert.False(t, c.HandleScroll(SideEditor))
	assert.Equal(t, 0, pv.writes)

	ed.rng = 100
	pv.rng = -5
	ed.offset = 20
	assert.False(t, c.HandleScroll(SideEditor))
	assert.Equal(t, 0, pv.writes)
}

func TestGateBlocksUntilTouched(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	ed := &pane{rng: 100, offset: 50}
	pv := &pane{rng: 200}
	gate := NewGate(clk, time.Second)
	c := NewCoordinator(ed, pv, clk, 50*time.Millisecond, gate)

	assert.False(t, c.HandleScroll(SideEditor), "content-driven scroll is ignored")

	gate.Touch()
	assert.True(t, c.HandleScroll(SideEditor))
	assert.Equal(t, 100.0, pv.offset)

	clk.Advance(600 * time.Millisecond)
	gate.Touch()
	clk.Advance(600 * time.Millisecond)
	assert.True(t, gate.Active(), "touch restarts the quiet period")
	clk.Advance(400 * time.Millisecond)
	assert.False(t, gate.Active())

	ed.offset = 0
	assert.False(t, c.HandleScroll(SideEditor))
	assert.True(t, c.Sync(SideEditor), "forced sync ignores the gate")
	assert.Equal(t, 0.0, pv.offset)
}

func TestDisabledCoordinator(t *testing.T) {
	ed, pv, c, _ := newPair(100, 100)
	c.SetEnabled(false)
	ed.offset = 30
	assert.False(t, c.HandleScroll(SideEditor))
	assert.False(t, c.Sync(SideEditor))
	assert.Equal(t, 0, pv.writes)
}

func TestRatioClamps(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(&pane{offset: 10, rng: 0}))
	assert.Equal(t, 1.0, Ratio(&pane{offset: 500, rng: 100}))
	assert.Equal(t, 0.0, Ratio(&pane{offset: -3, rng: 100}))
}
