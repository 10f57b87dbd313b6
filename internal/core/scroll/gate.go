package scroll

import (
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
)

const DefaultQuiet = time.Second

// Gate tracks whether the user is scrolling by hand. Touch marks it active;
// it goes inactive after a quiet period with no further Touch.
type Gate struct {
	mu     sync.Mutex
	clock  clock.Clock
	quiet  time.Duration
	active bool
	gen    uint64
	timer  clock.Timer
}

// NewGate creates an inactive gate.
func NewGate(clk clock.Clock, quiet time.Duration) *Gate {
	if clk == nil {
		clk = clock.Real{}
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Gate{clock: clk, quiet: quiet}
}

// Touch records pointer, wheel or paging activity.
func (g *Gate) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.active = true
	g.gen++
	gen := g.gen
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = g.clock.AfterFunc(g.quiet, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.gen == gen {
			g.active = false
			g.timer = nil
		}
	})
}

// Active reports whether manual scrolling is in progress.
func (g *Gate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}
