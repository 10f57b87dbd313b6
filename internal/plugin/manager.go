// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	order   []string          // registration order, used for init and shutdown
	plugins map[string]Plugin // Store loaded plugins by name
	started []Plugin          // initialized successfully, in order
	api     EditorAPI
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every plugin in registration order.
// A failing plugin is logged and skipped; it returns the names that failed.
func (m *Manager) InitializePlugins(api EditorAPI) []string {
	m.mu.Lock()
	m.api = api
	toInit := m.orderedLocked()
	m.mu.Unlock()

	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(toInit))
	var failed []string
	var started []Plugin
	for _, plugin := range toInit {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			failed = append(failed, plugin.Name())
			continue
		}
		started = append(started, plugin)
		logger.Debugf("Plugin Manager: Initialized plugin '%s'", plugin.Name())
	}

	m.mu.Lock()
	m.started = started
	m.mu.Unlock()
	return failed
}

// ShutdownPlugins calls Shutdown in reverse order on the plugins that
// initialized. Calling it again does nothing.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	toShutdown := m.started
	m.started = nil
	m.mu.Unlock()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(toShutdown))
	for i := len(toShutdown) - 1; i >= 0; i-- {
		plugin := toShutdown[i]
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

func (m *Manager) orderedLocked() []Plugin {
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}

