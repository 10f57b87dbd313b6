package input

import (
	"testing"

	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'x'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'X'}},
		{"persian rune", tcell.NewEventKey(tcell.KeyRune, 'س', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'س'}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionEvent{Action: ActionMoveLeft}},
		{"shift arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionEvent{Action: ActionMoveRight, Extend: true}},
		{"ctrl home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl), ActionEvent{Action: ActionMoveDocStart}},
		{"ctrl shift end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl|tcell.ModShift), ActionEvent{Action: ActionMoveDocEnd, Extend: true}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionInsertNewLine}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionEvent{Action: ActionInsertTab}},
		{"ctrl s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionEvent{Action: ActionUndo}},
		{"ctrl shift z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl|tcell.ModShift), ActionEvent{Action: ActionRedo}},
		{"ctrl y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionRedo}},
		{"ctrl b", tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl), ActionEvent{Action: ActionFormat, Directive: format.Strong}},
		{"ctrl k", tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl), ActionEvent{Action: ActionFormat, Directive: format.Link}},
		{"alt i", tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModAlt), ActionEvent{Action: ActionFormat, Directive: format.Emphasis}},
		{"alt T", tcell.NewEventKey(tcell.KeyRune, 'T', tcell.ModAlt|tcell.ModShift), ActionEvent{Action: ActionFormat, Directive: format.Table}},
		{"alt unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionCancel}},
		{"ctrl shift q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl|tcell.ModShift), ActionEvent{Action: ActionForceQuit}},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "undo", ActionUndo.String())
	assert.Equal(t, "unknown", Action(999).String())
	assert.True(t, ActionMovePageDown.IsMovement())
	assert.False(t, ActionPaste.IsMovement())
}
