// internal/event/events.go
package event

import (
	"github.com/bethropolis/scribe/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Document events
	TypeDocumentChanged  // Fired after any change to the document text
	TypeSelectionChanged // Fired when the selection or caret moves
	TypeDocumentLoaded   // Fired after a document replaced the buffer
	TypeDocumentSaved    // Fired after the document was written to disk

	// History events
	TypeHistoryCommitted // Fired when a snapshot was appended to history
	TypeHistoryApplied   // Fired after undo/redo restored a snapshot

	// Preference events
	TypeThemeChanged  // Fired when the theme is changed
	TypePrefChanged   // Fired when any persisted preference changes
	TypeExportWritten // Fired after an export file was written

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

var typeNames = map[Type]string{
	TypeUnknown:          "unknown",
	TypeDocumentChanged:  "document-changed",
	TypeSelectionChanged: "selection-changed",
	TypeDocumentLoaded:   "document-loaded",
	TypeDocumentSaved:    "document-saved",
	TypeHistoryCommitted: "history-committed",
	TypeHistoryApplied:   "history-applied",
	TypeThemeChanged:     "theme-changed",
	TypePrefChanged:      "pref-changed",
	TypeExportWritten:    "export-written",
	TypeAppReady:         "app-ready",
	TypeAppQuit:          "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// DocumentChangedData describes a text change.
type DocumentChangedData struct {
	Version      int  // Editor version after the change
	Programmatic bool // true for directives, undo/redo and loads
}

// SelectionChangedData carries the new selection and caret position.
type SelectionChangedData struct {
	Selection types.Selection
	Cursor    types.Position
}

// DocumentLoadedData contains info about the loaded document.
type DocumentLoadedData struct {
	FilePath string
}

// DocumentSavedData contains info about the saved document.
type DocumentSavedData struct {
	FilePath string
}

// HistoryData reports the history position after a commit, undo or redo.
type HistoryData struct {
	Cursor  int
	Len     int
	CanUndo bool
	CanRedo bool
}

// PrefChangedData names the preference and its new value.
type PrefChangedData struct {
	Key   string
	Value string
}

// ExportWrittenData names the written file.
type ExportWrittenData struct {
	Path     string
	MIMEType string
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name   string
	IsDark bool
}

// AppReadyData is sent once the first frame has been drawn.
type AppReadyData struct{}

// AppQuitData is sent before plugins are shut down.
type AppQuitData struct {
	Modified bool // unsaved changes were discarded
}
