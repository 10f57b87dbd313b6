// internal/core/editor.go
package core

import (
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/core/history"
	"github.com/bethropolis/scribe/internal/core/recorder"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/types"
)

// Clipboard is the system (or fallback) clipboard.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Options configures a new Editor.
type Options struct {
	HistoryLimit int
	Debounce     time.Duration
	TabWidth     int
	Clock        clock.Clock
	Format       format.Options
	Events       *event.Manager
	Clipboard    Clipboard
}

// Editor is one editing session: the document, its selection and history.
// It is not safe for concurrent use; the application drives it from its
// event loop. Only the recorder's debounce timer runs elsewhere, and it
// touches nothing but the recorder and its store.
type Editor struct {
	text       []rune
	lineStarts []int // offset of the first rune of every line

	anchor  int // fixed end of the selection
	head    int // moving end of the selection (the caret)
	goalCol int // column kept across vertical moves, -1 when unset

	filePath  string
	savedText string
	version   int
	tabWidth  int

	recorder  *recorder.Recorder
	formatter *format.Formatter
	events    *event.Manager
	clipboard Clipboard
}

// NewEditor creates an empty editing session with a single initial snapshot.
func NewEditor(opts Options) *Editor {
	if opts.HistoryLimit <= 1 {
		opts.HistoryLimit = config.DefaultHistoryLimit
	}
	if opts.Debounce <= 0 {
		opts.Debounce = config.DefaultDebounce
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = config.DefaultTabWidth
	}
	e := &Editor{
		goalCol:   -1,
		tabWidth:  opts.TabWidth,
		recorder:  recorder.New(history.NewManager(opts.HistoryLimit), opts.Clock, opts.Debounce),
		formatter: format.New(opts.Format),
		events:    opts.Events,
		clipboard: opts.Clipboard,
	}
	e.reindex()
	e.recorder.Reset("", types.Caret(0))
	return e
}

// SetClipboard replaces the clipboard backend.
func (e *Editor) SetClipboard(c Clipboard) {
	e.clipboard = c
}

// Recorder exposes the change recorder (for commit hooks and flushing).
func (e *Editor) Recorder() *recorder.Recorder {
	return e.recorder
}

// History exposes the snapshot store.
func (e *Editor) History() *history.Manager {
	return e.recorder.Store()
}

// Text returns the whole document.
func (e *Editor) Text() string {
	return string(e.text)
}

// Len returns the document length in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// Version increases on every text change.
func (e *Editor) Version() int {
	return e.version
}

// FilePath returns the path the document was loaded from or saved to.
func (e *Editor) FilePath() string {
	return e.filePath
}

// Modified reports whether the text differs from the last load or save.
func (e *Editor) Modified() bool {
	return string(e.text) != e.savedText
}

// SavedText is the text as of the last load or save.
func (e *Editor) SavedText() string {
	return e.savedText
}

// MarkSaved records that the current text was written to path.
func (e *Editor) MarkSaved(path string) {
	if path != "" {
		e.filePath = path
	}
	e.savedText = string(e.text)
	e.dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: e.filePath})
}

// CanUndo reports whether Undo would change the document.
func (e *Editor) CanUndo() bool {
	return e.recorder.Pending() || e.History().CanUndo()
}

// CanRedo reports whether Redo would change the document.
func (e *Editor) CanRedo() bool {
	return !e.recorder.Pending() && e.History().CanRedo()
}

// HistoryState summarises the history position for the status bar.
func (e *Editor) HistoryState() event.HistoryData {
	h := e.History()
	return event.HistoryData{Cursor: h.Cursor(), Len: h.Len(), CanUndo: e.CanUndo(), CanRedo: e.CanRedo()}
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.events != nil {
		e.events.Dispatch(t, data)
	}
}

// reindex rebuilds the line start table after a text change.
func (e *Editor) reindex() {
	e.lineStarts = e.lineStarts[:0]
	e.lineStarts = append(e.lineStarts, 0)
	for i, r := range e.text {
		if r == '\n' {
			e.lineStarts = append(e.lineStarts, i+1)
		}
	}
}
