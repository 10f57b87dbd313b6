package app

import (
	"path/filepath"

	"github.com/bethropolis/scribe/internal/core/scroll"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/statusbar"
)

// subscribeEvents wires the app's own reactions to editor events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeDocumentChanged, a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeDocumentLoaded, a.handleDocumentLoaded)
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
	a.eventManager.Subscribe(event.TypeExportWritten, a.handleExportWritten)
}

// handleDocumentChanged schedules re-highlighting. The preview follows the
// version lazily on the next draw.
func (a *App) handleDocumentChanged(e event.Event) bool {
	data, ok := e.Data.(event.DocumentChangedData)
	if !ok {
		logger.Warnf("App: DocumentChanged with unexpected data type: %T", e.Data)
		return false
	}
	a.highlighter.Update(a.editor.Text(), data.Version)
	return false
}

func (a *App) handleDocumentLoaded(e event.Event) bool {
	data, _ := e.Data.(event.DocumentLoadedData)
	a.editorPane.SetScrollOffset(0)
	a.refreshPreview()
	a.previewPane.SetScrollOffset(0)
	a.coordinator.Sync(scroll.SideEditor)
	a.watch(data.FilePath)
	return false
}

func (a *App) handleDocumentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentSavedData); ok {
		a.watch(data.FilePath)
	}
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	th := a.themeManager.Current()
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th))
	a.tuiManager.ApplyTheme(th)
	return false
}

func (a *App) handleExportWritten(e event.Event) bool {
	if data, ok := e.Data.(event.ExportWrittenData); ok {
		logger.Infof("Exported %s (%s)", data.Path, data.MIMEType)
	}
	return false
}

// watch points the file watcher at path, if watching is enabled.
func (a *App) watch(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil && abs == a.watcher.Target() {
		return
	}
	if err := a.watcher.Watch(path); err != nil {
		logger.Warnf("Cannot watch %s for external changes: %v", path, err)
	}
}
