package history

import (
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
)

const DefaultMaxHistory = 100

// Manager is a capacity-bounded linear undo stack of snapshots.
// cursor indexes the current snapshot; it is -1 only while the stack is empty.
type Manager struct {
	snapshots  []Snapshot
	cursor     int
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager holding at most maxHistory snapshots.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 1 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		snapshots:  make([]Snapshot, 0, maxHistory),
		cursor:     -1,
		maxHistory: maxHistory,
	}
}

// Commit records a new current snapshot. When text equals the current
// snapshot's text only the selection is updated and Commit returns false.
// Otherwise the redo branch is discarded, the snapshot appended and, if over
// capacity, the oldest snapshot evicted.
func (m *Manager) Commit(text string, selStart, selEnd int) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cursor >= 0 && m.snapshots[m.cursor].Text == text {
		m.snapshots[m.cursor].SelectionStart = selStart
		m.snapshots[m.cursor].SelectionEnd = selEnd
		return false
	}

	// Drop the redo branch.
	m.snapshots = m.snapshots[:m.cursor+1]
	m.snapshots = append(m.snapshots, Snapshot{Text: text, SelectionStart: selStart, SelectionEnd: selEnd})
	m.cursor = len(m.snapshots) - 1

	if len(m.snapshots) > m.maxHistory {
		m.snapshots = append(m.snapshots[:0], m.snapshots[1:]...)
		m.cursor--
	}

	logger.DebugTagf("history", "Committed snapshot. Cursor: %d, Count: %d", m.cursor, len(m.snapshots))
	return true
}

// Undo moves to the previous snapshot and returns it.
// It reports false, without changing state, when there is nothing to undo.
func (m *Manager) Undo() (Snapshot, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cursor <= 0 {
		return Snapshot{}, false
	}
	m.cursor--
	logger.DebugTagf("history", "Undo to %d/%d", m.cursor, len(m.snapshots))
	return m.snapshots[m.cursor], true
}

// Redo moves to the next snapshot and returns it.
func (m *Manager) Redo() (Snapshot, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cursor >= len(m.snapshots)-1 {
		return Snapshot{}, false
	}
	m.cursor++
	logger.DebugTagf("history", "Redo to %d/%d", m.cursor, len(m.snapshots))
	return m.snapshots[m.cursor], true
}

// CanUndo reports whether Undo would move.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.cursor > 0
}

// CanRedo reports whether Redo would move.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.cursor >= 0 && m.cursor < len(m.snapshots)-1
}

// Current returns the current snapshot, if any.
func (m *Manager) Current() (Snapshot, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.cursor < 0 {
		return Snapshot{}, false
	}
	return m.snapshots[m.cursor], true
}

// Len returns the number of stored snapshots.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.snapshots)
}

// Cursor returns the index of the current snapshot, or -1 when empty.
func (m *Manager) Cursor() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.cursor
}

// Capacity returns the configured maximum.
func (m *Manager) Capacity() int {
	return m.maxHistory
}

// Clear drops every snapshot.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.snapshots = m.snapshots[:0]
	m.cursor = -1
	logger.DebugTagf("history", "History cleared")
}
