package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/core/scroll"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/fileio"
	"github.com/bethropolis/scribe/internal/prefs"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct{ text string }

func (c *memClipboard) Read() (string, error)   { return c.text, nil }
func (c *memClipboard) Write(text string) error { c.text = text; return nil }

type testApp struct {
	*App
	screen tcell.SimulationScreen
	clock  *clock.Manual
	prefs  *prefs.Preferences
}

func newTestApp(t *testing.T, filePath string, setup func(cfg *config.Config, p *prefs.Preferences)) *testApp {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Export.Dir = t.TempDir()
	cfg.Theme.Dir = t.TempDir()
	p := prefs.New(prefs.NewMemoryStore())
	if setup != nil {
		setup(cfg, p)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	clk := clock.NewManual(time.Unix(0, 0))
	a, err := NewApp(cfg, filePath, Options{
		Screen:    screen,
		Clock:     clk,
		Prefs:     p,
		Clipboard: &memClipboard{},
		NoWatcher: true,
	})
	require.NoError(t, err)
	screen.SetSize(80, 24)
	a.handleEvent(tcell.NewEventResize(80, 24))
	t.Cleanup(a.shutdown)
	return &testApp{App: a, screen: screen, clock: clk, prefs: p}
}

func (ta *testApp) typeText(s string) {
	for _, r := range s {
		if r == '\n' {
			ta.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
			continue
		}
		ta.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (ta *testApp) key(k tcell.Key) {
	ta.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

// row returns the text of screen row y between columns x0 and x1.
func (ta *testApp) row(y, x0, x1 int) string {
	var sb strings.Builder
	for x := x0; x < x1; x++ {
		mainc, _, _, _ := ta.screen.GetContent(x, y)
		sb.WriteRune(mainc)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (ta *testApp) previewRow(y int) string {
	r := ta.layout.Preview
	return strings.TrimSpace(ta.row(y, r.X, r.X+r.W))
}

func (ta *testApp) statusRow() string {
	return ta.row(ta.layout.Status.Y, 0, ta.layout.Status.W)
}

func TestTypingUpdatesEditorPreviewAndStatus(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.statusBar.ResetTemporaryMessage()

	ta.typeText("# Hi\n\nsome words here")
	ta.draw()

	assert.Equal(t, "# Hi\n\nsome words here", ta.editor.Text())
	assert.Contains(t, ta.row(0, ta.layout.Editor.X, ta.layout.Editor.W), "# Hi")
	assert.Contains(t, ta.previewRow(0), "Hi")
	assert.NotContains(t, ta.previewRow(0), "##")

	assert.Contains(t, ta.statusRow(), "[No Name]")
	left, right := ta.statusBar.Texts()
	assert.Contains(t, left, "Ln 3, Col 16 -- ltr [+]")
	assert.Contains(t, right, "5 words")
	assert.Contains(t, right, "gfm")
}

func TestDraftRestoredWhenNoFileGiven(t *testing.T) {
	ta := newTestApp(t, "", func(_ *config.Config, p *prefs.Preferences) {
		p.Set(prefs.KeyMarkdownContent, "unsaved *draft*")
	})

	assert.Equal(t, "unsaved *draft*", ta.editor.Text())
	assert.Empty(t, ta.editor.FilePath())
	assert.False(t, ta.editor.CanUndo())
	msg, ok := ta.statusBar.Message()
	assert.True(t, ok)
	assert.Equal(t, "Restored unsaved draft", msg)
}

func TestDraftSavedOnQuitForScratchDocument(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("keep me")

	ta.shutdown()

	assert.Equal(t, "keep me", ta.prefs.Draft())
}

func TestStoredPreferencesApplyAtStartup(t *testing.T) {
	ta := newTestApp(t, "", func(_ *config.Config, p *prefs.Preferences) {
		p.Set(prefs.KeyTheme, "dark")
		p.Set(prefs.KeyParser, "commonmark")
		p.SetBool(prefs.KeyShowLineNumbers, true)
	})

	assert.Equal(t, "dark", ta.themeManager.Current().Name)
	assert.Equal(t, "commonmark", ta.engine.Name())
	assert.True(t, ta.editorPane.ShowLineNumbers())
}

func TestConfiguredParserWinsOverPreference(t *testing.T) {
	ta := newTestApp(t, "", func(cfg *config.Config, p *prefs.Preferences) {
		cfg.Markdown.Parser = "commonmark"
		p.Set(prefs.KeyParser, "gfm")
	})
	assert.Equal(t, "commonmark", ta.engine.Name())
}

func TestSaveWritesFileAndClearsModified(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("hello")

	_, err := ta.Save()
	assert.ErrorIs(t, err, errNoFileName)

	path := filepath.Join(t.TempDir(), "note.md")
	written, err := ta.editorAPI.SaveAs(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.False(t, ta.editor.Modified())
	assert.Equal(t, path, ta.editor.FilePath())

	ta.typeText("!")
	ta.key(tcell.KeyCtrlS)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello!", string(data))
}

func TestExportWritesHTMLAndMarkdown(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("# Title\n\nbody")

	var exported []event.ExportWrittenData
	ta.eventManager.Subscribe(event.TypeExportWritten, func(e event.Event) bool {
		exported = append(exported, e.Data.(event.ExportWrittenData))
		return false
	})

	htmlPath, err := ta.Export(ExportHTML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ta.cfg.Export.Dir, "document.html"), htmlPath)
	page, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), `dir="ltr"`)
	assert.Contains(t, string(page), "Title</h1>")
	assert.Contains(t, string(page), "Vazirmatn")

	mdPath, err := ta.Export(ExportMarkdown)
	require.NoError(t, err)
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", string(md))

	_, err = ta.Export("pdf")
	assert.ErrorIs(t, err, errUnknownExport)

	require.Len(t, exported, 2)
	assert.Equal(t, htmlPath, exported[0].Path)
	assert.Equal(t, mdPath, exported[1].Path)
}

func TestQuitRefusesUnsavedChangesUnlessForced(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("x")

	assert.ErrorIs(t, ta.editorAPI.Quit(false), errUnsavedChanges)
	assert.False(t, ta.quitting)

	require.NoError(t, ta.editorAPI.Quit(true))
	assert.True(t, ta.quitting)
}

func TestCtrlQTwiceQuitsWithUnsavedChanges(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("x")

	ta.key(tcell.KeyCtrlQ)
	assert.False(t, ta.quitting)
	ta.key(tcell.KeyCtrlQ)
	assert.True(t, ta.quitting)
}

func TestOpenLoadsFileInBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Loaded\r\n"), 0o644))

	ta := newTestApp(t, "", nil)
	require.NoError(t, ta.editorAPI.Open(path))
	require.Eventually(t, func() bool {
		ta.runQueued()
		return ta.editor.FilePath() == path
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "# Loaded\n", ta.editor.Text())
	assert.False(t, ta.editor.Modified())
	msg, _ := ta.statusBar.Message()
	assert.Equal(t, "Opened "+path, msg)

	assert.ErrorIs(t, ta.editorAPI.Open("  "), errEmptyOpenTarget)
}

func loadFailure(path string) fileio.LoadResult {
	_, err := fileio.ReadDocument(path)
	return fileio.LoadResult{Path: path, Err: err}
}

func TestOpenFailureKeepsDocument(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("mine")

	ta.finishLoad(loadFailure(filepath.Join(t.TempDir(), "missing.md")))

	assert.Equal(t, "mine", ta.editor.Text())
	msg, ok := ta.statusBar.Message()
	assert.True(t, ok)
	assert.Contains(t, msg, "Open failed")
}

func TestMissingFileOnCommandLineStartsNewDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")
	ta := newTestApp(t, path, nil)

	ta.loadFile(path)
	require.Eventually(t, func() bool {
		ta.runQueued()
		return ta.editor.FilePath() == path
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, ta.editor.Text())
	msg, _ := ta.statusBar.Message()
	assert.Equal(t, "New file "+path, msg)
}

func TestExternalChangeReloadsOnlyCleanBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.md")
	ta := newTestApp(t, "", nil)
	ta.editor.Load(path, "old")

	ta.handleExternalChange(path, "old", nil)
	assert.Equal(t, "old", ta.editor.Text(), "own write is ignored")

	ta.handleExternalChange(path, "new", nil)
	assert.Equal(t, "new", ta.editor.Text())
	assert.False(t, ta.editor.Modified())

	ta.typeText("!")
	ta.handleExternalChange(path, "newer", nil)
	assert.Equal(t, "!new", ta.editor.Text())
	msg, _ := ta.statusBar.Message()
	assert.Contains(t, msg, "changed on disk")
}

func TestToggleThemePersistsAndRestyles(t *testing.T) {
	ta := newTestApp(t, "", nil)
	var changed []event.ThemeChangedData
	ta.eventManager.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		changed = append(changed, e.Data.(event.ThemeChangedData))
		return false
	})

	ta.key(tcell.KeyCtrlT)

	assert.Equal(t, "dark", ta.themeManager.Current().Name)
	assert.Equal(t, "dark", ta.prefs.Theme())
	require.Len(t, changed, 1)
	assert.True(t, changed[0].IsDark)

	require.NoError(t, ta.editorAPI.SetTheme("light"))
	assert.Equal(t, "light", ta.prefs.Theme())
	assert.Error(t, ta.editorAPI.SetTheme("sepia"))
}

func TestSetParserSwitchesPreviewEngine(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.typeText("~~gone~~")
	ta.draw()
	assert.Equal(t, "gone", ta.previewRow(0))

	require.NoError(t, ta.editorAPI.SetParser("commonmark"))
	ta.draw()
	assert.Equal(t, "~~gone~~", ta.previewRow(0))
	assert.Equal(t, "commonmark", ta.prefs.Parser())

	assert.Error(t, ta.editorAPI.SetParser("asciidoc"))
	assert.Equal(t, "commonmark", ta.editorAPI.Parser())
}

func TestPromptRunsCommands(t *testing.T) {
	ta := newTestApp(t, "", nil)
	require.False(t, ta.editorPane.ShowLineNumbers())

	ta.key(tcell.KeyCtrlP)
	ta.typeText("numbers")
	ta.draw()
	assert.Equal(t, ":numbers", ta.statusRow())
	ta.key(tcell.KeyEnter)

	assert.True(t, ta.editorPane.ShowLineNumbers())
	assert.True(t, ta.prefs.ShowLineNumbers())
	assert.Empty(t, ta.editor.Text(), "prompt input does not reach the document")
}

func TestHelpCommandListsPluginCommands(t *testing.T) {
	ta := newTestApp(t, "", nil)

	ta.key(tcell.KeyCtrlP)
	ta.typeText("help")
	ta.key(tcell.KeyEnter)

	msg, ok := ta.statusBar.Message()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(msg, "Commands: "))
	for _, name := range []string{"draft", "export", "help", "q!", "stats"} {
		assert.Contains(t, strings.Fields(msg), name)
	}
}

func TestSessionOnlyPrefsAreReported(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Export.Dir = t.TempDir()
	cfg.Theme.Dir = t.TempDir()
	a, err := NewApp(cfg, "", Options{
		Screen:    tcell.NewSimulationScreen("UTF-8"),
		Clock:     clock.NewManual(time.Unix(0, 0)),
		Prefs:     prefs.New(nil),
		Clipboard: &memClipboard{},
		NoWatcher: true,
	})
	require.NoError(t, err)
	t.Cleanup(a.shutdown)

	msg, ok := a.statusBar.Message()
	require.True(t, ok)
	assert.Contains(t, msg, "Preferences unavailable")
}

func TestWheelScrollsPaneUnderPointerAndSyncs(t *testing.T) {
	ta := newTestApp(t, "", nil)
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, "- item")
	}
	ta.editor.Load("", strings.Join(lines, "\n"))
	ta.draw()
	require.Greater(t, ta.previewPane.ScrollableRange(), 0.0)

	editor := ta.layout.Editor
	ta.handleEvent(tcell.NewEventMouse(editor.X+1, editor.Y+1, tcell.WheelDown, tcell.ModNone))

	assert.Equal(t, 3.0, ta.editorPane.ScrollOffset())
	assert.Greater(t, ta.previewPane.ScrollOffset(), 0.0)

	preview := ta.layout.Preview
	before := ta.editorPane.ScrollOffset()
	ta.clock.Advance(time.Minute)
	ta.handleEvent(tcell.NewEventMouse(preview.X+1, preview.Y+1, tcell.WheelDown, tcell.ModNone))
	assert.NotEqual(t, before, ta.editorPane.ScrollOffset())
}

func TestTypingDoesNotSyncPreviewWithoutManualScroll(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.editor.Load("", strings.Repeat("line\n", 100))
	ta.draw()

	ta.clock.Advance(time.Minute)
	ta.handleEvent(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl))

	assert.Greater(t, ta.editorPane.ScrollOffset(), 0.0)
	assert.Zero(t, ta.previewPane.ScrollOffset())
}

func TestTypingAtEndKeepsPreviewInStep(t *testing.T) {
	ta := newTestApp(t, "", func(cfg *config.Config, _ *prefs.Preferences) {
		cfg.Scroll.ManualOnly = false
		cfg.Scroll.Sync = true
	})
	ta.draw()

	ta.typeText(strings.Repeat("x\n\n", 40))

	require.Greater(t, ta.editorPane.ScrollOffset(), 0.0)
	assert.Greater(t, ta.previewPane.ScrollOffset(), 0.0)
	assert.InDelta(t, scroll.Ratio(ta.editorPane), scroll.Ratio(ta.previewPane), 0.05)
}

func TestClickMovesCaretAndDragSelects(t *testing.T) {
	ta := newTestApp(t, "", nil)
	ta.editor.Load("", "first line\nsecond line")
	ta.draw()

	r := ta.layout.Editor
	ta.handleEvent(tcell.NewEventMouse(r.X+3, r.Y+1, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 14, ta.editor.Caret())
	assert.False(t, ta.editor.HasSelection())

	ta.handleEvent(tcell.NewEventMouse(r.X+6, r.Y+1, tcell.Button1, tcell.ModNone))
	ta.handleEvent(tcell.NewEventMouse(r.X+6, r.Y+1, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, "ond", ta.editor.SelectedText())

	ta.handleEvent(tcell.NewEventMouse(r.X, r.Y, tcell.Button1, tcell.ModNone))
	assert.False(t, ta.editor.HasSelection())
	assert.Equal(t, 0, ta.editor.Caret())
}

func TestHistoryCommitReachesPluginsThroughTheLoop(t *testing.T) {
	ta := newTestApp(t, "", nil)
	var commits int
	ta.eventManager.Subscribe(event.TypeHistoryCommitted, func(event.Event) bool {
		commits++
		return false
	})

	ta.typeText("abc")
	ta.clock.Advance(ta.cfg.Editor.Debounce.Duration)
	assert.Zero(t, commits, "commit waits for the event loop")

	ta.runQueued()
	assert.Equal(t, 1, commits)
	assert.Equal(t, "abc", ta.prefs.Draft())
}
