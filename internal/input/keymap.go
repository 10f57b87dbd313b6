// internal/input/keymap.go
package input

import (
	"unicode"

	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, Ctrl+letter)
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with extra modifiers
type FormatKeymap map[rune]format.Directive

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
	altRunes  FormatKeymap // Alt+letter formatting shortcuts
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
		altRunes:  make(FormatKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionCancel

	// --- Ctrl+letter (tcell reports these as their own keys) ---
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlE] = ActionExportHTML
	p.keymap[tcell.KeyCtrlD] = ActionExportMarkdown
	p.keymap[tcell.KeyCtrlP] = ActionEnterCommandMode
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyCtrlA] = ActionSelectAll
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste
	p.keymap[tcell.KeyCtrlL] = ActionToggleLineNumbers
	p.keymap[tcell.KeyCtrlT] = ActionToggleTheme
	p.keymap[tcell.KeyCtrlR] = ActionToggleScrollSync

	// --- Ctrl + navigation keys ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyHome] = ActionMoveDocStart
	ctrlMap[tcell.KeyEnd] = ActionMoveDocEnd
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// --- Formatting: Alt+letter and two Ctrl shortcuts ---
	p.keymap[tcell.KeyCtrlB] = ActionFormat
	p.keymap[tcell.KeyCtrlK] = ActionFormat
	p.altRunes['b'] = format.Strong
	p.altRunes['i'] = format.Emphasis
	p.altRunes['s'] = format.Strikethrough
	p.altRunes['h'] = format.Heading
	p.altRunes['q'] = format.Quote
	p.altRunes['u'] = format.UnorderedList
	p.altRunes['o'] = format.OrderedList
	p.altRunes['x'] = format.Checklist
	p.altRunes['c'] = format.Code
	p.altRunes['l'] = format.Link
	p.altRunes['g'] = format.Image
	p.altRunes['t'] = format.Table
}

// ctrlFormats holds the directive for Ctrl keys bound to ActionFormat.
var ctrlFormats = map[tcell.Key]format.Directive{
	tcell.KeyCtrlB: format.Strong,
	tcell.KeyCtrlK: format.Link,
}

// ProcessEvent takes a tcell key event and returns the corresponding
// ActionEvent. The caller decides what an action means in its mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	extend := mod&tcell.ModShift != 0
	base := mod &^ tcell.ModShift

	// 1. Alt+letter formatting, plain runes otherwise
	if key == tcell.KeyRune {
		if base&tcell.ModAlt != 0 {
			if d, ok := p.altRunes[unicode.ToLower(ev.Rune())]; ok {
				return ActionEvent{Action: ActionFormat, Directive: d}
			}
			return ActionEvent{Action: ActionUnknown}
		}
		if base&tcell.ModCtrl != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	// 2. Modifier + key combinations (Ctrl+Home, ...)
	if base != tcell.ModNone {
		if modKeyMap, ok := p.modKeymap[base]; ok {
			if action, ok := modKeyMap[key]; ok {
				return ActionEvent{Action: action, Extend: extend}
			}
		}
	}

	// Ctrl+letter keys already imply Ctrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		base &^= tcell.ModCtrl
	}

	// 3. Simple key mappings
	if base == tcell.ModNone {
		if action, ok := p.keymap[key]; ok {
			switch {
			case action == ActionFormat:
				return ActionEvent{Action: action, Directive: ctrlFormats[key]}
			case action == ActionUndo && extend:
				return ActionEvent{Action: ActionRedo}
			case action == ActionQuit && extend:
				return ActionEvent{Action: ActionForceQuit}
			}
			return ActionEvent{Action: action, Extend: extend && action.IsMovement()}
		}
	}

	// 4. No mapping found
	return ActionEvent{Action: ActionUnknown}
}
