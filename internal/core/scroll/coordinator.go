// Package scroll keeps the editor and preview panes at the same relative
// scroll position.
package scroll

import (
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/logger"
)

const DefaultSuppress = 50 * time.Millisecond

// Viewport is a scrollable surface.
type Viewport interface {
	ScrollOffset() float64
	SetScrollOffset(offset float64)
	// ScrollableRange is content extent minus frame extent.
	ScrollableRange() float64
}

// Side names one of the two coordinated viewports.
type Side int

const (
	SideEditor Side = iota
	SidePreview
)

func (s Side) other() Side {
	if s == SideEditor {
		return SidePreview
	}
	return SideEditor
}

func (s Side) String() string {
	if s == SideEditor {
		return "editor"
	}
	return "preview"
}

// Ratio returns v's relative position in [0, 1]; 0 when v cannot scroll.
func Ratio(v Viewport) float64 {
	r := v.ScrollableRange()
	if r <= 0 {
		return 0
	}
	ratio := v.ScrollOffset() / r
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Coordinator mirrors scroll notifications from one side onto the other.
type Coordinator struct {
	mu          sync.Mutex
	panes       [2]Viewport
	suppress    [2]bool
	clock       clock.Clock
	suppressFor time.Duration
	gate        *Gate
	enabled     bool
}

// NewCoordinator pairs the editor and preview viewports. gate may be nil, in
// which case every scroll notification is honoured.
func NewCoordinator(editor, preview Viewport, clk clock.Clock, suppressFor time.Duration, gate *Gate) *Coordinator {
	if clk == nil {
		clk = clock.Real{}
	}
	if suppressFor <= 0 {
		suppressFor = DefaultSuppress
	}
	return &Coordinator{
		panes:       [2]Viewport{editor, preview},
		clock:       clk,
		suppressFor: suppressFor,
		gate:        gate,
		enabled:     true,
	}
}

// SetEnabled turns synchronization on or off.
func (c *Coordinator) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

// Enabled reports whether synchronization is on.
func (c *Coordinator) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Suppressed reports whether the next notification from side will be dropped.
func (c *Coordinator) Suppressed(side Side) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suppress[side]
}

// HandleScroll reacts to a scroll notification from side. It reports whether
// the opposite viewport was moved. A notification arriving while the side's
// suppress flag is set was caused by the coordinator itself: the flag is
// cleared and nothing else happens.
func (c *Coordinator) HandleScroll(from Side) bool {
	c.mu.Lock()
	if c.suppress[from] {
		c.suppress[from] = false
		c.mu.Unlock()
		return false
	}
	if !c.enabled || (c.gate != nil && !c.gate.Active()) {
		c.mu.Unlock()
		return false
	}
	return c.alignLocked(from)
}

// Sync aligns the opposite viewport to from, ignoring the manual-scroll gate.
func (c *Coordinator) Sync(from Side) bool {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return false
	}
	return c.alignLocked(from)
}

// alignLocked is entered with c.mu held and releases it before writing the
// target offset, since the write may notify back into HandleScroll.
func (c *Coordinator) alignLocked(from Side) bool {
	source, target := c.panes[from], c.panes[from.other()]
	if source == nil || target == nil || source.ScrollableRange() <= 0 || target.ScrollableRange() <= 0 {
		c.mu.Unlock()
		return false
	}

	to := from.other()
	offset := Ratio(source) * target.ScrollableRange()
	c.suppress[to] = true
	c.mu.Unlock()

	target.SetScrollOffset(offset)
	logger.DebugTagf("scroll", "Synced %s -> %s at %.1f", from, to, offset)

	c.clock.AfterFunc(c.suppressFor, func() {
		c.mu.Lock()
		c.suppress[to] = false
		c.mu.Unlock()
	})
	return true
}
