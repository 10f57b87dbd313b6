package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/fileio"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/markdown"
)

// Export kinds accepted by Export.
const (
	ExportMarkdown = "md"
	ExportHTML     = "html"
)

var (
	errNoFileName      = errors.New("no file name (use :save <path>)")
	errUnknownExport   = errors.New("unknown export format (use md or html)")
	errUnsavedChanges  = errors.New("unsaved changes (use :q! to discard them)")
	errEmptyOpenTarget = errors.New("no file given")
)

// loadFile reads path in the background. A newer load cancels an older one.
func (a *App) loadFile(path string) {
	if a.loadCancel != nil {
		a.loadCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.loadCancel = cancel
	a.statusBar.SetTemporaryMessage("Opening %s...", path)
	fileio.LoadAsync(ctx, path, func(res fileio.LoadResult) {
		a.post(func() {
			if ctx.Err() == nil {
				a.finishLoad(res)
			}
		})
	})
}

// finishLoad installs a loaded document. A failed load leaves the buffer
// untouched, except that a missing file named on the command line starts a
// new empty document under that name.
func (a *App) finishLoad(res fileio.LoadResult) {
	if res.Err != nil {
		if errors.Is(res.Err, fs.ErrNotExist) && res.Path == a.initialPath && a.editor.FilePath() == "" {
			a.editor.Load(res.Path, "")
			a.statusBar.SetTemporaryMessage("New file %s", res.Path)
			return
		}
		a.statusBar.SetErrorMessage("Open failed: %v", res.Err)
		return
	}
	a.editor.Load(res.Path, res.Text)
	a.statusBar.SetTemporaryMessage("Opened %s", res.Path)
}

// onFileChanged runs on the watcher goroutine.
func (a *App) onFileChanged(path string) {
	text, err := fileio.ReadDocument(path)
	a.post(func() { a.handleExternalChange(path, text, err) })
}

// handleExternalChange reloads the document when another program changed it
// and the buffer has no unsaved edits. Otherwise the user is told.
func (a *App) handleExternalChange(path, text string, err error) {
	current, absErr := filepath.Abs(a.editor.FilePath())
	if absErr != nil || current != path {
		return
	}
	if err != nil {
		logger.DebugTagf("app", "Ignoring change to %s: %v", path, err)
		return
	}
	if text == a.editor.SavedText() {
		return
	}
	if a.editor.Modified() {
		a.statusBar.SetErrorMessage("%s changed on disk; :open it to discard your edits", filepath.Base(path))
		return
	}
	a.editor.Load(a.editor.FilePath(), text)
	a.statusBar.SetTemporaryMessage("Reloaded %s (changed on disk)", filepath.Base(path))
}

// saveAs writes the document to path, or to its current path when empty.
func (a *App) saveAs(path string) (string, error) {
	target := strings.TrimSpace(path)
	if target == "" {
		target = a.editor.FilePath()
	}
	if target == "" {
		return "", errNoFileName
	}
	a.editor.Flush()
	if err := fileio.WriteFileAtomic(target, []byte(a.editor.Text()), 0o644); err != nil {
		return "", err
	}
	a.editor.MarkSaved(target)
	logger.Infof("Saved %s", target)
	return target, nil
}

// Save writes the document to its current path.
func (a *App) Save() (string, error) {
	return a.saveAs("")
}

// Export writes the document as markdown or as a standalone HTML page into
// the export directory.
func (a *App) Export(kind string) (string, error) {
	text := a.editor.Text()
	base := fileio.BaseName(a.editor.FilePath(), a.cfg.Export.BaseName)

	var blob fileio.Blob
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ExportMarkdown, "markdown":
		blob = fileio.MarkdownBlob(base, text)
	case ExportHTML:
		body, err := markdown.SafeRender(a.engine, text)
		if err != nil {
			logger.Warnf("Export rendered with errors: %v", err)
		}
		page, err := markdown.HTMLDocument(body, markdown.DocumentOptions{
			Title: base,
			Dir:   direction.Detect(text, a.fallbackDir).String(),
			Font:  a.prefs.Font(),
		})
		if err != nil {
			return "", fmt.Errorf("building HTML page: %w", err)
		}
		blob = fileio.HTMLBlob(base, page)
	default:
		return "", errUnknownExport
	}

	path, err := a.exporter.Write(blob)
	if err != nil {
		return "", err
	}
	a.eventManager.Dispatch(event.TypeExportWritten, event.ExportWrittenData{Path: path, MIMEType: blob.MIMEType})
	return path, nil
}
