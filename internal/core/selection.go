package core

import (
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/types"
)

// Selection returns the normalized selection.
func (e *Editor) Selection() types.Selection {
	return types.Selection{Start: e.anchor, End: e.head}.Normalize()
}

// HasSelection reports whether a non-empty range is selected.
func (e *Editor) HasSelection() bool {
	return e.anchor != e.head
}

// Caret returns the offset of the moving end of the selection.
func (e *Editor) Caret() int {
	return e.head
}

// SelectedText returns the selected runes as a string.
func (e *Editor) SelectedText() string {
	sel := e.Selection()
	return string(e.text[sel.Start:sel.End])
}

// SetSelection selects [start, end). The caret ends up at sel.End.
func (e *Editor) SetSelection(sel types.Selection) {
	sel = sel.Clamp(len(e.text))
	e.anchor, e.head = sel.Start, sel.End
	e.goalCol = -1
	e.selectionChanged()
}

// SelectAll selects the whole document.
func (e *Editor) SelectAll() {
	e.SetSelection(types.Selection{Start: 0, End: len(e.text)})
}

// ClearSelection collapses the selection onto the caret.
func (e *Editor) ClearSelection() {
	if e.anchor == e.head {
		return
	}
	e.anchor = e.head
	e.selectionChanged()
}

func (e *Editor) selectionChanged() {
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{
		Selection: e.Selection(),
		Cursor:    e.CursorPosition(),
	})
}
