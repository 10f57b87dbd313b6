// internal/input/action.go
package input

import "github.com/bethropolis/scribe/internal/core/format"

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave
	ActionExportHTML
	ActionExportMarkdown
	ActionEnterCommandMode
	ActionCancel // Esc: leave the prompt or drop the selection

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionMoveDocStart
	ActionMoveDocEnd
	ActionSelectAll

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune argument
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key
	ActionFormat             // Requires Directive argument
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	// --- View ---
	ActionToggleLineNumbers
	ActionToggleTheme
	ActionToggleScrollSync
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionSave:               "save",
	ActionExportHTML:         "export-html",
	ActionExportMarkdown:     "export-markdown",
	ActionEnterCommandMode:   "command",
	ActionCancel:             "cancel",
	ActionMoveUp:             "up",
	ActionMoveDown:           "down",
	ActionMoveLeft:           "left",
	ActionMoveRight:          "right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionMoveDocStart:       "doc-start",
	ActionMoveDocEnd:         "doc-end",
	ActionSelectAll:          "select-all",
	ActionInsertRune:         "insert",
	ActionInsertNewLine:      "newline",
	ActionInsertTab:          "tab",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionFormat:             "format",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCopy:               "copy",
	ActionCut:                "cut",
	ActionPaste:              "paste",
	ActionToggleLineNumbers:  "toggle-line-numbers",
	ActionToggleTheme:        "toggle-theme",
	ActionToggleScrollSync:   "toggle-scroll-sync",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsMovement reports whether the action only moves the caret.
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMovePageUp, ActionMovePageDown, ActionMoveHome, ActionMoveEnd,
		ActionMoveDocStart, ActionMoveDocEnd:
		return true
	}
	return false
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action    Action
	Rune      rune             // Used for ActionInsertRune
	Directive format.Directive // Used for ActionFormat
	Extend    bool             // Shift held: movement extends the selection
}
