package core

import (
	"errors"
	"fmt"

	"github.com/bethropolis/scribe/internal/logger"
)

// ErrNoClipboard is returned when no clipboard backend is configured.
var ErrNoClipboard = errors.New("no clipboard available")

// Copy writes the selection to the clipboard. It reports false when there
// is nothing selected.
func (e *Editor) Copy() (bool, error) {
	if !e.HasSelection() {
		return false, nil
	}
	if e.clipboard == nil {
		return false, ErrNoClipboard
	}
	text := e.SelectedText()
	if err := e.clipboard.Write(text); err != nil {
		return false, fmt.Errorf("copy: %w", err)
	}
	logger.DebugTagf("clipboard", "Copied %d runes", len([]rune(text)))
	return true, nil
}

// Cut copies the selection and then deletes it.
func (e *Editor) Cut() (bool, error) {
	ok, err := e.Copy()
	if !ok || err != nil {
		return ok, err
	}
	e.deleteSelection()
	return true, nil
}

// Paste replaces the selection with the clipboard contents.
func (e *Editor) Paste() (bool, error) {
	if e.clipboard == nil {
		return false, ErrNoClipboard
	}
	text, err := e.clipboard.Read()
	if err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	if text == "" {
		return false, nil
	}
	e.InsertText(text)
	return true, nil
}
