package app

import (
	"github.com/bethropolis/scribe/internal/core/scroll"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/prefs"
	"github.com/bethropolis/scribe/internal/theme"
)

// Quit ends the main loop after the current event.
func (a *App) Quit() {
	a.quitting = true
}

// ToggleLineNumbers flips the editor gutter and remembers the choice.
func (a *App) ToggleLineNumbers() bool {
	show := !a.editorPane.ShowLineNumbers()
	a.editorPane.SetShowLineNumbers(show)
	a.editorPane.EnsureCursorVisible()
	a.prefs.SetBool(prefs.KeyShowLineNumbers, show)
	return show
}

// ToggleTheme switches between light and dark and returns the new name.
func (a *App) ToggleTheme() string {
	th := a.themeManager.Toggle()
	a.themeApplied(th)
	return th.Name
}

// themeApplied persists th as the preferred theme and announces it.
func (a *App) themeApplied(th *theme.Theme) {
	a.prefs.Set(prefs.KeyTheme, th.Name)
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: th.Name, IsDark: th.IsDark})
}

// ToggleScrollSync flips scroll synchronization. Turning it on aligns the
// preview with the editor straight away.
func (a *App) ToggleScrollSync() bool {
	on := !a.coordinator.Enabled()
	a.setScrollSync(on)
	return on
}

func (a *App) setScrollSync(on bool) {
	a.coordinator.SetEnabled(on)
	if on {
		a.coordinator.Sync(scroll.SideEditor)
	}
}

// PageSize is the number of editor lines on screen.
func (a *App) PageSize() int {
	return a.layout.Editor.H
}

// ManualScroll opens the manual-scroll window so the coming scroll syncs.
func (a *App) ManualScroll() {
	a.gate.Touch()
}
