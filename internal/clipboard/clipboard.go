// Package clipboard provides the system clipboard with an in-process
// fallback for headless sessions.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/scribe/internal/logger"
)

// Backend is a raw clipboard implementation.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Manager reads and writes the clipboard. Writes are always kept in an
// internal register, so copy and paste keep working inside the editor when
// the system clipboard is missing or fails.
type Manager struct {
	mu       sync.Mutex
	backend  Backend
	register string
	warned   bool
}

// New returns a manager using the system clipboard when one is available.
func New() *Manager {
	if clipboard.Unsupported {
		logger.Infof("System clipboard unavailable, using internal clipboard")
		return NewWithBackend(nil)
	}
	return NewWithBackend(systemBackend{})
}

// NewWithBackend returns a manager over backend. A nil backend means the
// internal register only.
func NewWithBackend(b Backend) *Manager {
	return &Manager{backend: b}
}

// System reports whether a system clipboard backend is in use.
func (m *Manager) System() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend != nil
}

// Write stores text in the register and the system clipboard.
func (m *Manager) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.register = text
	if m.backend == nil {
		return nil
	}
	if err := m.backend.WriteAll(text); err != nil {
		m.warnOnce(err)
	}
	return nil
}

// Read returns the system clipboard contents, or the register when the
// system clipboard cannot be read.
func (m *Manager) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend == nil {
		return m.register, nil
	}
	text, err := m.backend.ReadAll()
	if err != nil {
		m.warnOnce(err)
		return m.register, nil
	}
	return text, nil
}

func (m *Manager) warnOnce(err error) {
	if m.warned {
		logger.DebugTagf("clipboard", "System clipboard error: %v", err)
		return
	}
	m.warned = true
	logger.Warnf("System clipboard failed, falling back to internal clipboard: %v", err)
}
