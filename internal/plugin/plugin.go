// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the words typed after the command name.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor.
type EditorAPI interface {
	// --- Document ---
	Text() string
	LineCount() int
	FilePath() string
	IsModified() bool
	Selection() types.Selection

	// --- Mutation ---
	InsertText(text string)
	ApplyDirective(d format.Directive)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Preferences ---
	GetPref(key string) string
	SetPref(key, value string)

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
