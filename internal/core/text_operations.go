package core

import (
	"strings"

	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/types"
)

// replaceRange swaps text[start:end] for insert and puts the caret after it.
func (e *Editor) replaceRange(start, end int, insert string) {
	ins := []rune(insert)
	out := make([]rune, 0, len(e.text)-(end-start)+len(ins))
	out = append(out, e.text[:start]...)
	out = append(out, ins...)
	out = append(out, e.text[end:]...)
	e.text = out
	e.reindex()
	e.anchor = start + len(ins)
	e.head = e.anchor
	e.goalCol = -1
}

// replaceAll installs text and selection wholesale.
func (e *Editor) replaceAll(text string, sel types.Selection) {
	e.text = []rune(text)
	e.reindex()
	sel = sel.Clamp(len(e.text))
	e.anchor, e.head = sel.Start, sel.End
	e.goalCol = -1
}

// userEdit bumps the version and hands the new state to the recorder.
func (e *Editor) userEdit() {
	e.version++
	e.recorder.OnEdit(string(e.text), e.Selection())
	e.dispatch(event.TypeDocumentChanged, event.DocumentChangedData{Version: e.version})
	e.selectionChanged()
}

// programmaticEdit bumps the version after a change the recorder must not
// see through the debounce path.
func (e *Editor) programmaticEdit() {
	e.version++
	e.dispatch(event.TypeDocumentChanged, event.DocumentChangedData{Version: e.version, Programmatic: true})
	e.selectionChanged()
}

// InsertText replaces the selection with s, as typing or pasting does.
func (e *Editor) InsertText(s string) {
	if s == "" && !e.HasSelection() {
		return
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	sel := e.Selection()
	e.replaceRange(sel.Start, sel.End, s)
	e.userEdit()
}

// InsertNewline inserts a line break at the caret.
func (e *Editor) InsertNewline() {
	e.InsertText("\n")
}

// InsertTab inserts spaces up to the next tab stop.
func (e *Editor) InsertTab() {
	col := e.OffsetToPosition(e.Selection().Start).Col
	n := e.tabWidth - col%e.tabWidth
	e.InsertText(strings.Repeat(" ", n))
}

// DeleteBackward removes the selection, or the grapheme before the caret.
func (e *Editor) DeleteBackward() {
	if e.HasSelection() {
		e.deleteSelection()
		return
	}
	if e.head == 0 {
		return
	}
	start := e.prevBoundary(e.head)
	e.replaceRange(start, e.head, "")
	e.userEdit()
}

// DeleteForward removes the selection, or the grapheme after the caret.
func (e *Editor) DeleteForward() {
	if e.HasSelection() {
		e.deleteSelection()
		return
	}
	if e.head >= len(e.text) {
		return
	}
	end := e.nextBoundary(e.head)
	e.replaceRange(e.head, end, "")
	e.userEdit()
}

func (e *Editor) deleteSelection() {
	sel := e.Selection()
	e.replaceRange(sel.Start, sel.End, "")
	e.userEdit()
}

// Load replaces the whole document, as opening a file does. History is
// cleared and restarted at the new text.
func (e *Editor) Load(path, text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	e.replaceAll(text, types.Caret(0))
	e.filePath = path
	e.savedText = text
	e.recorder.Reset(text, types.Caret(0))
	e.programmaticEdit()
	logger.InfoTagf("editor", "Loaded document %q (%d runes)", path, len(e.text))
	e.dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: path})
}

// RestoreDraft installs text as an unsaved document with fresh history.
func (e *Editor) RestoreDraft(text string) {
	e.Load("", text)
	e.savedText = ""
}
