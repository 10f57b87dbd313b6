package modehandler

import (
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/core"
	"github.com/bethropolis/scribe/internal/statusbar"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	saves     int
	saveErr   error
	exports   []string
	quits     int
	lines     bool
	sync      bool
	manual    int
	themeName string
}

func (h *fakeHost) Save() (string, error) {
	h.saves++
	return "/tmp/doc.md", h.saveErr
}

func (h *fakeHost) Export(kind string) (string, error) {
	h.exports = append(h.exports, kind)
	return "/tmp/document." + kind, nil
}

func (h *fakeHost) Quit()                   { h.quits++ }
func (h *fakeHost) ToggleLineNumbers() bool { h.lines = !h.lines; return h.lines }
func (h *fakeHost) ToggleTheme() string     { return h.themeName }
func (h *fakeHost) ToggleScrollSync() bool  { h.sync = !h.sync; return h.sync }
func (h *fakeHost) PageSize() int           { return 3 }
func (h *fakeHost) ManualScroll()           { h.manual++ }

type memClipboard struct{ text string }

func (m *memClipboard) Read() (string, error)   { return m.text, nil }
func (m *memClipboard) Write(text string) error { m.text = text; return nil }

func newHandler(t *testing.T) (*ModeHandler, *core.Editor, *fakeHost, *statusbar.StatusBar) {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	ed := core.NewEditor(core.Options{Clock: clk, Clipboard: &memClipboard{}})
	sb := statusbar.New(statusbar.DefaultConfig(), clk)
	host := &fakeHost{themeName: "dark"}
	mh := New(Config{Editor: ed, StatusBar: sb, Host: host})
	return mh, ed, host, sb
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeKeys(mh *ModeHandler, s string) {
	for _, r := range s {
		mh.HandleKeyEvent(runeKey(r))
	}
}

func message(sb *statusbar.StatusBar) string {
	msg, _ := sb.Message()
	return msg
}

func TestTypingAndFormatting(t *testing.T) {
	mh, ed, _, _ := newHandler(t)
	typeKeys(mh, "hi")
	assert.True(t, mh.HandleKeyEvent(key(tcell.KeyCtrlA, tcell.ModCtrl)))
	assert.True(t, mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModAlt)))
	assert.Equal(t, "**hi**", ed.Text())

	// Typing still inside the debounce window is folded into the format step.
	mh.HandleKeyEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, "", ed.Text())
}

func TestShiftArrowExtendsSelection(t *testing.T) {
	mh, ed, _, _ := newHandler(t)
	typeKeys(mh, "abc")
	mh.HandleKeyEvent(key(tcell.KeyLeft, tcell.ModShift))
	mh.HandleKeyEvent(key(tcell.KeyLeft, tcell.ModShift))
	assert.Equal(t, "bc", ed.SelectedText())

	mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone))
	assert.False(t, ed.HasSelection())
}

func TestQuitNeedsConfirmationWhenModified(t *testing.T) {
	mh, _, host, sb := newHandler(t)
	typeKeys(mh, "x")

	mh.HandleKeyEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	assert.Zero(t, host.quits)
	assert.Contains(t, message(sb), "Unsaved changes")

	mh.HandleKeyEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	assert.Equal(t, 1, host.quits)
}

func TestQuitConfirmationResetsAfterOtherAction(t *testing.T) {
	mh, _, host, _ := newHandler(t)
	typeKeys(mh, "x")
	mh.HandleKeyEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	typeKeys(mh, "y")
	mh.HandleKeyEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	assert.Zero(t, host.quits)
}

func TestSaveAndExportReportOutcome(t *testing.T) {
	mh, _, host, sb := newHandler(t)

	mh.HandleKeyEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))
	assert.Equal(t, "Saved /tmp/doc.md", message(sb))

	host.saveErr = errors.New("disk full")
	mh.HandleKeyEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))
	assert.Equal(t, "Save failed: disk full", message(sb))

	mh.HandleKeyEvent(key(tcell.KeyCtrlE, tcell.ModCtrl))
	mh.HandleKeyEvent(key(tcell.KeyCtrlD, tcell.ModCtrl))
	assert.Equal(t, []string{"html", "md"}, host.exports)
}

func TestPageMovesMarkManualScroll(t *testing.T) {
	mh, ed, host, _ := newHandler(t)
	ed.Load("", "1\n2\n3\n4\n5\n6")
	mh.HandleKeyEvent(key(tcell.KeyPgDn, tcell.ModNone))
	assert.Equal(t, 2, ed.CursorPosition().Line)
	assert.Equal(t, 1, host.manual)
}

func TestPromptRunsCommands(t *testing.T) {
	mh, _, _, sb := newHandler(t)
	var got []string
	require.NoError(t, mh.RegisterCommand("theme", func(args []string) error {
		got = args
		return nil
	}))
	assert.Error(t, mh.RegisterCommand("theme", func([]string) error { return nil }))
	assert.Error(t, mh.RegisterCommand("", func([]string) error { return nil }))

	mh.HandleKeyEvent(key(tcell.KeyCtrlP, tcell.ModCtrl))
	require.Equal(t, ModePrompt, mh.GetCurrentMode())
	typeKeys(mh, "theme darkk")
	mh.HandleKeyEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Equal(t, "theme dark", mh.GetCommandBuffer())

	mh.HandleKeyEvent(key(tcell.KeyEnter, tcell.ModNone))
	assert.Equal(t, ModeNormal, mh.GetCurrentMode())
	assert.Equal(t, []string{"dark"}, got)

	mh.HandleKeyEvent(key(tcell.KeyCtrlP, tcell.ModCtrl))
	typeKeys(mh, "nope")
	mh.HandleKeyEvent(key(tcell.KeyEnter, tcell.ModNone))
	assert.Equal(t, "Unknown command: nope", message(sb))
}

func TestPromptDoesNotEditDocument(t *testing.T) {
	mh, ed, _, _ := newHandler(t)
	mh.HandleKeyEvent(key(tcell.KeyCtrlP, tcell.ModCtrl))
	typeKeys(mh, "abc")
	mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone))
	assert.Equal(t, ModeNormal, mh.GetCurrentMode())
	assert.Equal(t, "", ed.Text())
	assert.Equal(t, "", mh.GetCommandBuffer())
}

func TestCommandErrorIsReported(t *testing.T) {
	mh, _, _, sb := newHandler(t)
	require.NoError(t, mh.RegisterCommand("fail", func([]string) error { return errors.New("boom") }))
	assert.Error(t, mh.ExecuteCommand("fail now"))
	assert.Equal(t, "fail: boom", message(sb))
	assert.Equal(t, []string{"fail"}, mh.Commands())
}

func TestClipboardMessages(t *testing.T) {
	mh, ed, _, sb := newHandler(t)
	mh.HandleKeyEvent(key(tcell.KeyCtrlC, tcell.ModCtrl))
	assert.Equal(t, "Nothing selected", message(sb))

	typeKeys(mh, "word")
	ed.SelectAll()
	mh.HandleKeyEvent(key(tcell.KeyCtrlX, tcell.ModCtrl))
	assert.Equal(t, "Cut selection", message(sb))
	assert.Equal(t, "", ed.Text())

	mh.HandleKeyEvent(key(tcell.KeyCtrlV, tcell.ModCtrl))
	assert.Equal(t, "word", ed.Text())
}
