// internal/app/editor_api.go
package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/scribe/internal/commands"
	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/markdown"
	"github.com/bethropolis/scribe/internal/plugin"
	"github.com/bethropolis/scribe/internal/prefs"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
)

var (
	_ plugin.EditorAPI  = (*appEditorAPI)(nil)
	_ commands.AppAPI   = (*appEditorAPI)(nil)
	_ commands.ThemeAPI = (*appEditorAPI)(nil)
)

// appEditorAPI is the view of the app handed to plugins and commands.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document ---

func (api *appEditorAPI) Text() string               { return api.app.editor.Text() }
func (api *appEditorAPI) LineCount() int             { return api.app.editor.LineCount() }
func (api *appEditorAPI) FilePath() string           { return api.app.editor.FilePath() }
func (api *appEditorAPI) IsModified() bool           { return api.app.editor.Modified() }
func (api *appEditorAPI) Selection() types.Selection { return api.app.editor.Selection() }

// --- Mutation ---

func (api *appEditorAPI) InsertText(text string) {
	api.app.editor.InsertText(text)
}

func (api *appEditorAPI) ApplyDirective(d format.Directive) {
	api.app.editor.ApplyDirective(d)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription {
	return api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app.modeHandler == nil {
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

// --- Preferences ---

func (api *appEditorAPI) GetPref(key string) string { return api.app.prefs.Get(key) }
func (api *appEditorAPI) SetPref(key, value string) { api.app.prefs.Set(key, value) }

func (api *appEditorAPI) Font() string { return api.app.prefs.Font() }

func (api *appEditorAPI) SetFont(name string) {
	api.app.prefs.Set(prefs.KeyFont, strings.TrimSpace(name))
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

// SetTheme activates the named theme and remembers it.
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	api.app.themeApplied(api.app.themeManager.Current())
	logger.Debugf("Theme changed to '%s'", name)
	return nil
}

func (api *appEditorAPI) GetTheme() *theme.Theme { return api.app.themeManager.Current() }
func (api *appEditorAPI) ListThemes() []string   { return api.app.themeManager.ListThemes() }

// --- Parser ---

func (api *appEditorAPI) Parser() string { return api.app.engine.Name() }

// SetParser switches the markdown flavour used by the preview and exports.
func (api *appEditorAPI) SetParser(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	engine, err := markdown.New(name, api.app.markdownOptions())
	if err != nil {
		return err
	}
	api.app.engine = engine
	api.app.prefs.Set(prefs.KeyParser, engine.Name())
	return nil
}

// --- View ---

func (api *appEditorAPI) ToggleLineNumbers() bool { return api.app.ToggleLineNumbers() }
func (api *appEditorAPI) ScrollSync() bool        { return api.app.coordinator.Enabled() }
func (api *appEditorAPI) SetScrollSync(on bool)   { api.app.setScrollSync(on) }

// --- Commands ---

func (api *appEditorAPI) Commands() []string { return api.app.modeHandler.Commands() }

// --- Files ---

// Open starts loading path; the result is reported in the status bar.
func (api *appEditorAPI) Open(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errEmptyOpenTarget
	}
	api.app.loadFile(path)
	return nil
}

func (api *appEditorAPI) SaveAs(path string) (string, error) { return api.app.saveAs(path) }
func (api *appEditorAPI) Export(kind string) (string, error) { return api.app.Export(kind) }

// Quit exits. Without force it refuses while the document has unsaved
// changes.
func (api *appEditorAPI) Quit(force bool) error {
	if !force && api.app.editor.Modified() {
		return errUnsavedChanges
	}
	api.app.Quit()
	return nil
}
