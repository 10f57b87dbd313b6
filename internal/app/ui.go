package app

import (
	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/core/stats"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/modehandler"
	"github.com/bethropolis/scribe/internal/preview"
	"github.com/bethropolis/scribe/internal/tui"
	"github.com/rivo/uniseg"
)

// draw redraws all components.
func (a *App) draw() {
	a.refreshPreview()
	a.updateStatusBarContent()

	th := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()

	a.tuiManager.Clear()
	a.editorPane.Draw(screen, th)
	a.previewPane.Draw(screen, th)
	tui.DrawSeparator(screen, a.layout.Separator, th)
	a.statusBar.Draw(screen, a.layout.Status.Y, a.layout.Status.W)

	if a.modeHandler.GetCurrentMode() == modehandler.ModePrompt {
		left, _ := a.statusBar.Texts()
		screen.ShowCursor(uniseg.StringWidth(left), a.layout.Status.Y)
	}
	a.tuiManager.Show()
	a.scheduleToastExpiry()
}

// refreshPreview re-lays out the preview when the text, its width or the
// parser changed since the last draw.
func (a *App) refreshPreview() {
	width := a.layout.Preview.W
	version := a.editor.Version()
	if version == a.previewVersion && width == a.previewWidth && a.engine == a.previewEngine {
		return
	}
	doc, err := preview.Layout(a.engine, a.editor.Text(), preview.Options{
		Width:     width,
		HardWraps: a.cfg.Markdown.HardWraps,
		Fallback:  a.fallbackDir,
	})
	if err != nil {
		logger.Warnf("Preview failed for version %d: %v", version, err)
	}
	a.previewPane.SetDocument(doc)
	a.previewVersion, a.previewWidth, a.previewEngine = version, width, a.engine
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.Modified())
	pos := a.editor.CursorPosition()
	a.statusBar.SetCursorInfo(pos, direction.Detect(a.editor.Line(pos.Line), a.fallbackDir))
	if v := a.editor.Version(); v != a.statsVersion {
		a.statusBar.SetStats(stats.Compute(a.editor.Text()))
		a.statsVersion = v
	}
	a.statusBar.SetHistory(a.editor.HistoryState())
	a.statusBar.SetParser(a.engine.Name())
}

// scheduleToastExpiry wakes the loop once a temporary message times out so
// the status bar returns to the document summary without further input.
func (a *App) scheduleToastExpiry() {
	if a.toastPending {
		return
	}
	if _, active := a.statusBar.Message(); !active {
		return
	}
	a.toastPending = true
	a.clock.AfterFunc(a.statusBar.MessageTimeout(), func() {
		a.post(func() { a.toastPending = false })
	})
}
