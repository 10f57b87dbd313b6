package core

import (
	"sort"

	"github.com/bethropolis/scribe/internal/types"
	"github.com/rivo/uniseg"
)

// LineCount returns the number of lines; an empty document has one.
func (e *Editor) LineCount() int {
	return len(e.lineStarts)
}

// lineBounds returns the rune range of line (excluding its newline).
func (e *Editor) lineBounds(line int) (start, end int) {
	start = e.lineStarts[line]
	if line+1 < len(e.lineStarts) {
		end = e.lineStarts[line+1] - 1
	} else {
		end = len(e.text)
	}
	return start, end
}

// Line returns the text of a 0-based line, or "" when out of range.
func (e *Editor) Line(line int) string {
	if line < 0 || line >= len(e.lineStarts) {
		return ""
	}
	start, end := e.lineBounds(line)
	return string(e.text[start:end])
}

// Lines returns every line of the document.
func (e *Editor) Lines() []string {
	out := make([]string, len(e.lineStarts))
	for i := range e.lineStarts {
		out[i] = e.Line(i)
	}
	return out
}

// OffsetToPosition converts a rune offset to a line/column position.
func (e *Editor) OffsetToPosition(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(e.text) {
		offset = len(e.text)
	}
	line := sort.Search(len(e.lineStarts), func(i int) bool { return e.lineStarts[i] > offset }) - 1
	return types.Position{Line: line, Col: offset - e.lineStarts[line]}
}

// PositionToOffset converts a position to a rune offset, clamping both parts.
func (e *Editor) PositionToOffset(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(e.lineStarts) {
		return len(e.text)
	}
	start, end := e.lineBounds(pos.Line)
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// CursorPosition returns the caret's line and column.
func (e *Editor) CursorPosition() types.Position {
	return e.OffsetToPosition(e.head)
}

// moveTo places the caret at offset, extending the selection if asked.
func (e *Editor) moveTo(offset int, extend bool, keepGoal bool) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(e.text) {
		offset = len(e.text)
	}
	e.head = offset
	if !extend {
		e.anchor = offset
	}
	if !keepGoal {
		e.goalCol = -1
	}
	e.selectionChanged()
}

// prevBoundary returns the start of the grapheme cluster before offset.
func (e *Editor) prevBoundary(offset int) int {
	if offset <= 0 {
		return 0
	}
	if e.text[offset-1] == '\n' {
		return offset - 1
	}
	lineStart := e.lineStarts[e.OffsetToPosition(offset).Line]
	last := lineStart
	gr := uniseg.NewGraphemes(string(e.text[lineStart:offset]))
	pos := lineStart
	for gr.Next() {
		last = pos
		pos += len(gr.Runes())
	}
	return last
}

// nextBoundary returns the end of the grapheme cluster at offset.
func (e *Editor) nextBoundary(offset int) int {
	if offset >= len(e.text) {
		return len(e.text)
	}
	if e.text[offset] == '\n' {
		return offset + 1
	}
	_, end := e.lineBounds(e.OffsetToPosition(offset).Line)
	gr := uniseg.NewGraphemes(string(e.text[offset:end]))
	if gr.Next() {
		return offset + len(gr.Runes())
	}
	return offset + 1
}

// MoveLeft moves one grapheme left. Without extend, a selection collapses
// to its start.
func (e *Editor) MoveLeft(extend bool) {
	if !extend && e.HasSelection() {
		e.moveTo(e.Selection().Start, false, false)
		return
	}
	e.moveTo(e.prevBoundary(e.head), extend, false)
}

// MoveRight moves one grapheme right. Without extend, a selection collapses
// to its end.
func (e *Editor) MoveRight(extend bool) {
	if !extend && e.HasSelection() {
		e.moveTo(e.Selection().End, false, false)
		return
	}
	e.moveTo(e.nextBoundary(e.head), extend, false)
}

// MoveVertical moves the caret by delta lines, keeping the goal column.
func (e *Editor) MoveVertical(delta int, extend bool) {
	pos := e.CursorPosition()
	if e.goalCol < 0 {
		e.goalCol = pos.Col
	}
	target := pos.Line + delta
	switch {
	case target < 0:
		e.moveTo(0, extend, true)
		return
	case target >= e.LineCount():
		e.moveTo(len(e.text), extend, true)
		return
	}
	e.moveTo(e.PositionToOffset(types.Position{Line: target, Col: e.goalCol}), extend, true)
}

// MoveUp moves one line up.
func (e *Editor) MoveUp(extend bool) { e.MoveVertical(-1, extend) }

// MoveDown moves one line down.
func (e *Editor) MoveDown(extend bool) { e.MoveVertical(1, extend) }

// MoveLineStart moves to the start of the caret's line.
func (e *Editor) MoveLineStart(extend bool) {
	e.moveTo(e.lineStarts[e.CursorPosition().Line], extend, false)
}

// MoveLineEnd moves to the end of the caret's line.
func (e *Editor) MoveLineEnd(extend bool) {
	_, end := e.lineBounds(e.CursorPosition().Line)
	e.moveTo(end, extend, false)
}

// MoveDocStart moves to offset 0.
func (e *Editor) MoveDocStart(extend bool) { e.moveTo(0, extend, false) }

// MoveDocEnd moves past the last rune.
func (e *Editor) MoveDocEnd(extend bool) { e.moveTo(len(e.text), extend, false) }

// MoveTo places the caret at a line/column, as a mouse click would.
func (e *Editor) MoveTo(pos types.Position, extend bool) {
	e.moveTo(e.PositionToOffset(pos), extend, false)
}
