package modehandler

import (
	"github.com/bethropolis/scribe/internal/input"
	"github.com/bethropolis/scribe/internal/logger"
)

func (mh *ModeHandler) enterPrompt() {
	mh.currentMode = ModePrompt
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.SetPrompt(":", true)
	logger.Debugf("ModeHandler: Entering Prompt Mode")
}

func (mh *ModeHandler) leavePrompt() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.SetPrompt("", false)
}

// handleActionPrompt handles actions while a command is being typed.
func (mh *ModeHandler) handleActionPrompt(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.leavePrompt()
			logger.Debugf("ModeHandler: Exiting Prompt Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.leavePrompt()
		_ = mh.ExecuteCommand(line) // failures are reported on the status bar
		return true

	case input.ActionCancel, input.ActionQuit:
		mh.leavePrompt()
		logger.Debugf("ModeHandler: Canceled Prompt Mode")
		return true

	default:
		return false
	}

	mh.statusBar.SetPrompt(":"+string(mh.cmdBuffer), true)
	return true
}
