package core

import (
	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/core/history"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/types"
)

// ApplyDirective formats the selection and records the result immediately.
func (e *Editor) ApplyDirective(d format.Directive) format.Result {
	res := e.formatter.Apply(string(e.text), e.Selection(), d)
	e.recorder.Apply(func() {
		e.replaceAll(res.Text, res.Selection)
		e.programmaticEdit()
	})
	e.recorder.RecordNow(res.Text, res.Selection)
	logger.DebugTagf("editor", "Applied %s", d)
	return res
}

// Flush commits any pending typing to history now.
func (e *Editor) Flush() {
	e.recorder.Flush()
}

// Undo restores the previous snapshot. It reports whether anything changed.
func (e *Editor) Undo() bool {
	snap, ok := e.recorder.Undo()
	if !ok {
		return false
	}
	e.restore(snap)
	return true
}

// Redo restores the next snapshot.
func (e *Editor) Redo() bool {
	snap, ok := e.recorder.Redo()
	if !ok {
		return false
	}
	e.restore(snap)
	return true
}

func (e *Editor) restore(snap history.Snapshot) {
	e.recorder.Apply(func() {
		e.replaceAll(snap.Text, types.Selection{Start: snap.SelectionStart, End: snap.SelectionEnd})
		e.programmaticEdit()
	})
	e.dispatch(event.TypeHistoryApplied, e.HistoryState())
}
