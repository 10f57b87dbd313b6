// Package highlight runs the markdown highlighter off the UI goroutine,
// debouncing bursts of edits and discarding stale results.
package highlight

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/types"
)

// DebounceHighlightDuration is how long the manager waits after the last
// edit before highlighting.
const DebounceHighlightDuration = 65 * time.Millisecond

// Highlighter produces line styles for a document.
type Highlighter interface {
	Highlight(ctx context.Context, src []byte) (types.LineStyles, error)
}

// Manager handles debounced asynchronous syntax highlighting.
type Manager struct {
	highlighter Highlighter
	clock       clock.Clock
	delay       time.Duration
	appRedraw   func() // requests a redraw once new styles are stored

	mu             sync.Mutex
	timer          clock.Timer
	cancelFunc     context.CancelFunc // cancels the running task, if any
	pendingText    string
	pendingVersion int
	hasPending     bool

	styles  types.LineStyles
	version int // document version the styles belong to

	wg sync.WaitGroup
}

// NewManager creates a highlighting manager. redraw may be nil.
func NewManager(h Highlighter, clk clock.Clock, redraw func()) *Manager {
	if clk == nil {
		clk = clock.Real{}
	}
	if redraw == nil {
		redraw = func() {}
	}
	return &Manager{
		highlighter: h,
		clock:       clk,
		delay:       DebounceHighlightDuration,
		appRedraw:   redraw,
		styles:      make(types.LineStyles),
		version:     -1,
	}
}

// Update schedules highlighting of text at version, replacing any pending
// request and restarting the debounce window.
func (m *Manager) Update(text string, version int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pendingText = text
	m.pendingVersion = version
	m.hasPending = true

	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = m.clock.AfterFunc(m.delay, m.runHighlightUpdate)
}

// runHighlightUpdate starts the background task for the pending text.
func (m *Manager) runHighlightUpdate() {
	m.mu.Lock()
	m.timer = nil
	if !m.hasPending {
		m.mu.Unlock()
		return
	}
	text, version := m.pendingText, m.pendingVersion
	m.hasPending = false
	m.pendingText = ""

	// A newer request supersedes a task still running.
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFunc = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	logger.DebugTagf("highlight", "Starting background highlight for version %d", version)
	go func() {
		defer m.wg.Done()
		defer cancel()
		if m.run(ctx, text, version) {
			m.appRedraw()
		}
	}()
}

// run highlights text and stores the result unless it is stale.
func (m *Manager) run(ctx context.Context, text string, version int) bool {
	styles, err := m.highlighter.Highlight(ctx, []byte(text))
	if err != nil {
		if ctx.Err() != nil {
			logger.DebugTagf("highlight", "Highlight task for version %d cancelled", version)
			return false
		}
		logger.Warnf("Background highlighting failed: %v", err)
		styles = make(types.LineStyles)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if version < m.version {
		logger.DebugTagf("highlight", "Dropping stale highlights for version %d (have %d)", version, m.version)
		return false
	}
	m.styles = styles
	m.version = version
	return true
}

// Refresh highlights text synchronously. It is used for the first paint
// after a document is loaded.
func (m *Manager) Refresh(ctx context.Context, text string, version int) error {
	styles, err := m.highlighter.Highlight(ctx, []byte(text))
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.styles = styles
	m.version = version
	m.mu.Unlock()
	return nil
}

// ForLine returns the styled ranges of a line from the latest result.
func (m *Manager) ForLine(line int) []types.StyledRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.styles[line]
}

// Version returns the document version of the stored styles, or -1.
func (m *Manager) Version() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Wait blocks until running background tasks finish.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Shutdown cancels any pending or running task.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.hasPending = false
	if m.cancelFunc != nil {
		logger.DebugTagf("highlight", "Shutting down, cancelling running task")
		m.cancelFunc()
		m.cancelFunc = nil
	}
	m.mu.Unlock()
	m.wg.Wait()
}
