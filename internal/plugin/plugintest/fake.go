// Package plugintest provides an in-memory EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"strings"

	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/plugin"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
)

var _ plugin.EditorAPI = (*API)(nil)

// API records what plugins do with the editor.
type API struct {
	Doc        string
	Path       string
	Modified   bool
	Sel        types.Selection
	Events     *event.Manager
	Commands   map[string]plugin.CommandFunc
	Prefs      map[string]string
	Messages   []string
	Directives []format.Directive
	Theme      *theme.Theme
}

// New creates an API over text.
func New(text string) *API {
	return &API{
		Doc:      text,
		Events:   event.NewManager(),
		Commands: make(map[string]plugin.CommandFunc),
		Prefs:    make(map[string]string),
		Theme:    &theme.Light,
	}
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	fn, ok := a.Commands[name]
	if !ok {
		return fmt.Errorf("no command %q", name)
	}
	return fn(args)
}

// LastMessage returns the latest status message or "".
func (a *API) LastMessage() string {
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}

func (a *API) Text() string               { return a.Doc }
func (a *API) LineCount() int             { return strings.Count(a.Doc, "\n") + 1 }
func (a *API) FilePath() string           { return a.Path }
func (a *API) IsModified() bool           { return a.Modified }
func (a *API) Selection() types.Selection { return a.Sel }
func (a *API) InsertText(text string)     { a.Doc += text }
func (a *API) ApplyDirective(d format.Directive) {
	a.Directives = append(a.Directives, d)
}

func (a *API) DispatchEvent(t event.Type, data interface{}) { a.Events.Dispatch(t, data) }

func (a *API) SubscribeEvent(t event.Type, h event.Handler) event.Subscription {
	return a.Events.Subscribe(t, h)
}

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := a.Commands[name]; ok {
		return fmt.Errorf("command %q already registered", name)
	}
	a.Commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

func (a *API) GetPref(key string) string             { return a.Prefs[key] }
func (a *API) SetPref(key, value string)             { a.Prefs[key] = value }
func (a *API) GetThemeStyle(name string) tcell.Style { return a.Theme.GetStyle(name) }
func (a *API) SetTheme(name string) error {
	switch name {
	case theme.LightName:
		a.Theme = &theme.Light
	case theme.DarkName:
		a.Theme = &theme.Dark
	default:
		return fmt.Errorf("theme %q not found", name)
	}
	return nil
}
func (a *API) GetTheme() *theme.Theme { return a.Theme }
func (a *API) ListThemes() []string   { return []string{theme.DarkName, theme.LightName} }
