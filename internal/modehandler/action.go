package modehandler

import (
	"errors"

	"github.com/bethropolis/scribe/internal/core"
	"github.com/bethropolis/scribe/internal/input"
	"github.com/bethropolis/scribe/internal/logger"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	extend := actionEvent.Extend
	actionProcessed := true

	switch action {
	case input.ActionEnterCommandMode:
		mh.enterPrompt()

	case input.ActionQuit:
		if mh.editor.Modified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+Q again to quit without saving.")
			mh.forceQuitPending = true
			return true
		}
		mh.host.Quit()
	case input.ActionForceQuit:
		mh.host.Quit()

	case input.ActionCancel:
		if !mh.editor.HasSelection() && !mh.forceQuitPending {
			return false
		}
		mh.editor.ClearSelection()
		if mh.forceQuitPending {
			mh.statusBar.ResetTemporaryMessage()
		}

	case input.ActionSave:
		path, err := mh.host.Save()
		if err != nil {
			mh.statusBar.SetErrorMessage("Save failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Saved %s", path)
		}
	case input.ActionExportHTML, input.ActionExportMarkdown:
		kind := "md"
		if action == input.ActionExportHTML {
			kind = "html"
		}
		path, err := mh.host.Export(kind)
		if err != nil {
			mh.statusBar.SetErrorMessage("Export failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Exported %s", path)
		}

	case input.ActionMoveUp:
		mh.editor.MoveUp(extend)
	case input.ActionMoveDown:
		mh.editor.MoveDown(extend)
	case input.ActionMoveLeft:
		mh.editor.MoveLeft(extend)
	case input.ActionMoveRight:
		mh.editor.MoveRight(extend)
	case input.ActionMovePageUp:
		mh.host.ManualScroll()
		mh.editor.MoveVertical(-mh.pageSize(), extend)
	case input.ActionMovePageDown:
		mh.host.ManualScroll()
		mh.editor.MoveVertical(mh.pageSize(), extend)
	case input.ActionMoveHome:
		mh.editor.MoveLineStart(extend)
	case input.ActionMoveEnd:
		mh.editor.MoveLineEnd(extend)
	case input.ActionMoveDocStart:
		mh.editor.MoveDocStart(extend)
	case input.ActionMoveDocEnd:
		mh.editor.MoveDocEnd(extend)
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	case input.ActionInsertRune:
		mh.editor.InsertText(string(actionEvent.Rune))
	case input.ActionInsertNewLine:
		mh.editor.InsertNewline()
	case input.ActionInsertTab:
		mh.editor.InsertTab()
	case input.ActionDeleteCharBackward:
		mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		mh.editor.DeleteForward()
	case input.ActionFormat:
		mh.editor.ApplyDirective(actionEvent.Directive)

	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionCopy:
		mh.clipboardResult("Copied", mh.editor.Copy)
	case input.ActionCut:
		mh.clipboardResult("Cut", mh.editor.Cut)
	case input.ActionPaste:
		ok, err := mh.editor.Paste()
		if err != nil {
			mh.reportClipboardError(err)
		} else if !ok {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
		}

	case input.ActionToggleLineNumbers:
		if mh.host.ToggleLineNumbers() {
			mh.statusBar.SetTemporaryMessage("Line numbers on")
		} else {
			mh.statusBar.SetTemporaryMessage("Line numbers off")
		}
	case input.ActionToggleTheme:
		mh.statusBar.SetTemporaryMessage("Theme: %s", mh.host.ToggleTheme())
	case input.ActionToggleScrollSync:
		if mh.host.ToggleScrollSync() {
			mh.statusBar.SetTemporaryMessage("Scroll sync on")
		} else {
			mh.statusBar.SetTemporaryMessage("Scroll sync off")
		}

	default:
		actionProcessed = false
	}

	if actionProcessed && action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

func (mh *ModeHandler) pageSize() int {
	if n := mh.host.PageSize(); n > 1 {
		return n - 1
	}
	return 1
}

func (mh *ModeHandler) clipboardResult(verb string, op func() (bool, error)) {
	ok, err := op()
	switch {
	case err != nil:
		mh.reportClipboardError(err)
	case ok:
		mh.statusBar.SetTemporaryMessage("%s selection", verb)
	default:
		mh.statusBar.SetTemporaryMessage("Nothing selected")
	}
}

func (mh *ModeHandler) reportClipboardError(err error) {
	logger.Debugf("Clipboard error: %v", err)
	if errors.Is(err, core.ErrNoClipboard) {
		mh.statusBar.SetErrorMessage("Clipboard unavailable")
		return
	}
	mh.statusBar.SetErrorMessage("Clipboard: %v", err)
}
