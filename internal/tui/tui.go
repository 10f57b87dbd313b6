// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a TUI on the real terminal.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes a TUI over s (a simulation screen in tests).
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	s.EnablePaste()
	return &TUI{screen: s}, nil
}

// ApplyTheme sets the screen's base style.
func (t *TUI) ApplyTheme(th *theme.Theme) {
	t.screen.SetStyle(th.GetStyle("Default"))
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Wake makes a blocked PollEvent return an interrupt event. It is safe to
// call from any goroutine.
func (t *TUI) Wake() error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws every cell, e.g. after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout is the split of the screen into panes.
type Layout struct {
	Editor    Rect
	Separator Rect
	Preview   Rect
	Status    Rect
}

// ComputeLayout splits a width x height screen: editor on the left, a one
// column separator, preview on the right and the status bar at the bottom.
func ComputeLayout(width, height int) Layout {
	bodyH := height - config.StatusBarHeight
	if bodyH < 0 {
		bodyH = 0
	}
	l := Layout{Status: Rect{X: 0, Y: bodyH, W: width, H: config.StatusBarHeight}}
	if width < 3 {
		l.Editor = Rect{X: 0, Y: 0, W: width, H: bodyH}
		return l
	}
	editorW := (width - 1) / 2
	l.Editor = Rect{X: 0, Y: 0, W: editorW, H: bodyH}
	l.Separator = Rect{X: editorW, Y: 0, W: 1, H: bodyH}
	l.Preview = Rect{X: editorW + 1, Y: 0, W: width - editorW - 1, H: bodyH}
	return l
}

// DrawSeparator draws the vertical line between the panes.
func DrawSeparator(screen tcell.Screen, r Rect, th *theme.Theme) {
	style := th.GetStyle("PaneBorder")
	for y := r.Y; y < r.Y+r.H; y++ {
		screen.SetContent(r.X, y, '│', nil, style)
	}
}
