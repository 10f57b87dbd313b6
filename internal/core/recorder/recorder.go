// Package recorder decides when raw edits become history snapshots.
// Rapid edits are coalesced by a debounce timer; programmatic edits are
// recorded immediately and bypass the debounce path.
package recorder

import (
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/core/history"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/types"
)

const DefaultDelay = 400 * time.Millisecond

// CommitFunc is notified after a snapshot reached the store. appended is
// false when only the selection of the current snapshot changed.
type CommitFunc func(snap history.Snapshot, appended bool)

// Recorder feeds a history.Manager.
type Recorder struct {
	mu       sync.Mutex
	store    *history.Manager
	clock    clock.Clock
	delay    time.Duration
	timer    clock.Timer
	gen      uint64 // bumped on every reschedule; stale timers compare and bail
	pending  *history.Snapshot
	applying bool
	onCommit CommitFunc
}

// New creates a recorder over store. A nil clock means the wall clock.
func New(store *history.Manager, clk clock.Clock, delay time.Duration) *Recorder {
	if clk == nil {
		clk = clock.Real{}
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Recorder{store: store, clock: clk, delay: delay}
}

// SetOnCommit installs the commit hook. It may run on a timer goroutine.
func (r *Recorder) SetOnCommit(fn CommitFunc) {
	r.mu.Lock()
	r.onCommit = fn
	r.mu.Unlock()
}

// Store returns the underlying snapshot store.
func (r *Recorder) Store() *history.Manager {
	return r.store
}

// OnEdit notes a user edit and (re)starts the debounce timer. It returns
// false when the edit was ignored because history is being applied.
func (r *Recorder) OnEdit(text string, sel types.Selection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.applying {
		return false
	}

	r.pending = &history.Snapshot{Text: text, SelectionStart: sel.Start, SelectionEnd: sel.End}
	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = r.clock.AfterFunc(r.delay, func() { r.fire(gen) })
	return true
}

func (r *Recorder) fire(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || r.pending == nil {
		r.mu.Unlock()
		return
	}
	snap := *r.pending
	r.pending = nil
	r.timer = nil
	appended := r.store.Commit(snap.Text, snap.SelectionStart, snap.SelectionEnd)
	hook := r.onCommit
	r.mu.Unlock()

	logger.DebugTagf("recorder", "Debounced edit committed (appended=%v)", appended)
	if hook != nil {
		hook(snap, appended)
	}
}

// cancelLocked drops any pending debounced edit. Caller holds r.mu.
func (r *Recorder) cancelLocked() {
	r.gen++
	r.pending = nil
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Pending reports whether a debounced edit is waiting for its timer.
func (r *Recorder) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

// Apply runs fn with the re-entrancy guard set: edit notifications raised
// while fn runs are not recorded.
func (r *Recorder) Apply(fn func()) {
	r.mu.Lock()
	r.applying = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.applying = false
		r.mu.Unlock()
	}()
	fn()
}

// Applying reports whether the guard is set.
func (r *Recorder) Applying() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applying
}

// RecordNow commits a programmatic change immediately, superseding any
// pending debounced edit.
func (r *Recorder) RecordNow(text string, sel types.Selection) bool {
	r.mu.Lock()
	r.cancelLocked()
	appended := r.store.Commit(text, sel.Start, sel.End)
	hook := r.onCommit
	r.mu.Unlock()

	if hook != nil {
		hook(history.Snapshot{Text: text, SelectionStart: sel.Start, SelectionEnd: sel.End}, appended)
	}
	return appended
}

// Flush commits a pending debounced edit now. It reports whether there was one.
func (r *Recorder) Flush() bool {
	r.mu.Lock()
	if r.pending == nil {
		r.mu.Unlock()
		return false
	}
	snap := *r.pending
	r.cancelLocked()
	appended := r.store.Commit(snap.Text, snap.SelectionStart, snap.SelectionEnd)
	hook := r.onCommit
	r.mu.Unlock()

	if hook != nil {
		hook(snap, appended)
	}
	return true
}

// Undo flushes pending edits and steps the store back.
func (r *Recorder) Undo() (history.Snapshot, bool) {
	r.Flush()
	return r.store.Undo()
}

// Redo flushes pending edits and steps the store forward.
func (r *Recorder) Redo() (history.Snapshot, bool) {
	r.Flush()
	return r.store.Redo()
}

// Reset discards all history and starts a fresh sequence at text.
func (r *Recorder) Reset(text string, sel types.Selection) {
	r.mu.Lock()
	r.cancelLocked()
	r.store.Clear()
	r.store.Commit(text, sel.Start, sel.End)
	r.mu.Unlock()
	logger.DebugTagf("recorder", "History reset")
}
