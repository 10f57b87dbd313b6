// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bethropolis/scribe/internal/clipboard"
	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/core"
	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/core/history"
	"github.com/bethropolis/scribe/internal/core/scroll"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/fileio"
	"github.com/bethropolis/scribe/internal/highlight"
	"github.com/bethropolis/scribe/internal/highlighter"
	"github.com/bethropolis/scribe/internal/input"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/markdown"
	"github.com/bethropolis/scribe/internal/modehandler"
	"github.com/bethropolis/scribe/internal/plugin"
	"github.com/bethropolis/scribe/internal/prefs"
	"github.com/bethropolis/scribe/internal/statusbar"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options carries what NewApp cannot take from the configuration. Zero
// values select the real terminal, clock, clipboard and preference store.
type Options struct {
	Screen    tcell.Screen
	Clock     clock.Clock
	Prefs     *prefs.Preferences
	Clipboard core.Clipboard
	// Theme overrides the stored theme preference for this session.
	Theme string
	// NoWatcher disables reloading the open file when it changes on disk.
	NoWatcher bool
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg   *config.Config
	clock clock.Clock

	tuiManager    *tui.TUI
	layout        tui.Layout
	editor        *core.Editor
	editorPane    *tui.EditorPane
	previewPane   *tui.PreviewPane
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	editorAPI     *appEditorAPI
	themeManager  *theme.Manager
	prefs         *prefs.Preferences
	highlighter   *highlight.Manager
	engine        *markdown.Engine
	coordinator   *scroll.Coordinator
	gate          *scroll.Gate
	exporter      *fileio.Exporter
	watcher       *fileio.Watcher
	fallbackDir   direction.Direction

	initialPath string
	loadCancel  context.CancelFunc

	// Preview and status caches, rebuilt lazily when drawing.
	previewVersion int
	previewWidth   int
	previewEngine  *markdown.Engine
	statsVersion   int

	mouseDown    bool
	toastPending bool
	quitting     bool
	closed       bool

	// Work posted from other goroutines, run on the event loop.
	queueMu sync.Mutex
	queue   []func()
}

// NewApp creates and initializes a new application instance. filePath may
// be empty, in which case the saved draft is restored.
func NewApp(cfg *config.Config, filePath string, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen)
	} else {
		tuiManager, err = tui.New()
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a := &App{
		cfg:            cfg,
		clock:          clk,
		tuiManager:     tuiManager,
		eventManager:   event.NewManager(),
		pluginManager:  plugin.NewManager(),
		fallbackDir:    direction.Parse(cfg.Editor.DefaultDirection, direction.RTL),
		initialPath:    filePath,
		previewVersion: -1,
		statsVersion:   -1,
	}

	a.prefs = opts.Prefs
	if a.prefs == nil {
		a.prefs = prefs.Open(prefsPath(cfg))
	}

	a.themeManager = theme.NewManager(themesDir(cfg))
	themeName := opts.Theme
	if themeName == "" {
		themeName = a.prefs.Theme()
	}
	if err := a.themeManager.SetTheme(themeName); err != nil {
		logger.Warnf("Theme %q unavailable, using %s: %v", themeName, a.themeManager.Current().Name, err)
	}
	a.tuiManager.ApplyTheme(a.themeManager.Current())

	a.engine = a.newEngine(a.initialParser())

	var clip core.Clipboard = opts.Clipboard
	if clip == nil {
		m := clipboard.New()
		logger.DebugTagf("app", "System clipboard in use: %t", m.System())
		clip = m
	}
	fmtOpts := format.DefaultOptions()
	fmtOpts.HeadingLevel = cfg.Editor.HeadingLevel
	a.editor = core.NewEditor(core.Options{
		HistoryLimit: cfg.Editor.HistoryLimit,
		Debounce:     cfg.Editor.Debounce.Duration,
		TabWidth:     cfg.Editor.TabWidth,
		Clock:        clk,
		Format:       fmtOpts,
		Events:       a.eventManager,
		Clipboard:    clip,
	})
	// Runs on the recorder's timer goroutine for debounced typing.
	a.editor.Recorder().SetOnCommit(func(_ history.Snapshot, appended bool) {
		a.post(func() {
			if appended {
				a.eventManager.Dispatch(event.TypeHistoryCommitted, a.editor.HistoryState())
			}
		})
	})

	a.highlighter = highlight.NewManager(highlighter.NewHighlighter(), clk, func() { a.post(nil) })

	a.editorPane = tui.NewEditorPane(a.editor, a.highlighter, cfg.Editor.TabWidth)
	a.editorPane.SetShowLineNumbers(a.prefs.ShowLineNumbers())
	a.previewPane = tui.NewPreviewPane()

	a.gate = scroll.NewGate(clk, cfg.Scroll.ManualQuiet.Duration)
	var gate *scroll.Gate
	if cfg.Scroll.ManualOnly {
		gate = a.gate
	}
	a.coordinator = scroll.NewCoordinator(a.editorPane, a.previewPane, clk, cfg.Scroll.Suppress.Duration, gate)
	a.coordinator.SetEnabled(cfg.Scroll.Sync)
	a.editorPane.SetOnScroll(func() { a.coordinator.HandleScroll(scroll.SideEditor) })
	a.previewPane.SetOnScroll(func() { a.coordinator.HandleScroll(scroll.SidePreview) })

	a.statusBar = statusbar.New(statusbar.ConfigFromTheme(a.themeManager.Current()), clk)
	a.exporter = fileio.NewExporter(exportDir(cfg))
	if a.prefs.Degraded() {
		a.statusBar.SetErrorMessage("Preferences unavailable; settings last for this session only")
	}

	if !opts.NoWatcher {
		watcher, err := fileio.NewWatcher(clk, a.onFileChanged)
		if err != nil {
			logger.Warnf("External change detection disabled: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      a.statusBar,
		Host:           a,
	})
	a.editorAPI = newEditorAPI(a)

	a.prefs.OnChange(func(key, value string) {
		a.eventManager.Dispatch(event.TypePrefChanged, event.PrefChangedData{Key: key, Value: value})
	})
	a.subscribeEvents()

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("Plugin registration incomplete: %v", err)
	}
	registerAppCommands(a)
	if failed := a.pluginManager.InitializePlugins(a.editorAPI); len(failed) > 0 {
		logger.Warnf("Plugins failed to initialize: %v", failed)
	}

	a.relayout()
	if filePath == "" {
		if draft := a.prefs.Draft(); draft != "" {
			a.editor.RestoreDraft(draft)
			a.statusBar.SetTemporaryMessage("Restored unsaved draft")
		}
	}
	return a, nil
}

// initialParser picks the parser: a configured or flagged parser wins over
// the stored preference, which wins over the built-in default.
func (a *App) initialParser() string {
	if a.cfg.Markdown.Parser != "" && a.cfg.Markdown.Parser != config.DefaultParser {
		return a.cfg.Markdown.Parser
	}
	return a.prefs.Parser()
}

// newEngine builds a markdown engine, falling back to GFM for unknown names.
func (a *App) newEngine(name string) *markdown.Engine {
	opts := a.markdownOptions()
	engine, err := markdown.New(name, opts)
	if err == nil {
		return engine
	}
	logger.Warnf("Parser %q unavailable, using %s: %v", name, markdown.ParserGFM, err)
	engine, _ = markdown.New(markdown.ParserGFM, opts)
	return engine
}

func (a *App) markdownOptions() markdown.Options {
	return markdown.Options{HardWraps: a.cfg.Markdown.HardWraps}
}

func prefsPath(cfg *config.Config) string {
	if cfg.Storage.PrefsDB != "" {
		return cfg.Storage.PrefsDB
	}
	dir, err := config.DefaultDir()
	if err != nil {
		logger.Warnf("No location for preferences: %v", err)
		return ""
	}
	return filepath.Join(dir, config.DefaultPrefsFileName)
}

func themesDir(cfg *config.Config) string {
	if cfg.Theme.Dir != "" {
		return cfg.Theme.Dir
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, config.ThemesDirName)
}

func exportDir(cfg *config.Config) string {
	if cfg.Export.Dir != "" {
		return cfg.Export.Dir
	}
	return "."
}

// Run starts the application's main loop and returns after quitting.
func (a *App) Run() error {
	defer a.shutdown()

	if a.initialPath != "" {
		a.loadFile(a.initialPath)
	}
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	if _, active := a.statusBar.Message(); !active {
		a.statusBar.SetTemporaryMessage("%s %s | Ctrl+S save | Ctrl+E export | Ctrl+Q quit", config.AppName, config.Version)
	}
	a.draw()

	for !a.quitting {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		a.handleEvent(ev)
		a.runQueued()
		if !a.quitting {
			a.draw()
		}
	}
	return nil
}

// handleEvent dispatches one terminal event.
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.relayout()
		a.refreshPreview()
		a.editorPane.EnsureCursorVisible()
	case *tcell.EventKey:
		a.modeHandler.HandleKeyEvent(ev)
		if !a.quitting {
			// The preview must match the text before the editor scroll syncs it.
			a.refreshPreview()
			a.editorPane.EnsureCursorVisible()
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventPaste:
		logger.DebugTagf("app", "Bracketed paste start=%v", ev.Start())
	case *tcell.EventInterrupt:
		// Wake-up for posted work; runQueued follows.
	}
}

const wheelLines = 3

// handleMouse scrolls the pane under the pointer and moves the caret on
// clicks and drags in the editor.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&(tcell.WheelUp|tcell.WheelDown) != 0:
		delta := wheelLines
		if buttons&tcell.WheelUp != 0 {
			delta = -delta
		}
		a.gate.Touch()
		switch {
		case a.layout.Preview.Contains(x, y):
			a.previewPane.ScrollBy(delta)
		case a.layout.Editor.Contains(x, y):
			a.editorPane.ScrollBy(delta)
		}
	case buttons&tcell.Button1 != 0:
		a.gate.Touch()
		if pos, ok := a.editorPane.ScreenToPosition(x, y); ok {
			a.editor.MoveTo(pos, a.mouseDown)
			a.editorPane.EnsureCursorVisible()
		}
		a.mouseDown = true
	case buttons == tcell.ButtonNone:
		a.mouseDown = false
	}
}

// post queues fn for the event loop and wakes it. fn may be nil to request
// a redraw only. Safe to call from any goroutine.
func (a *App) post(fn func()) {
	if fn != nil {
		a.queueMu.Lock()
		a.queue = append(a.queue, fn)
		a.queueMu.Unlock()
	}
	if err := a.tuiManager.Wake(); err != nil {
		logger.DebugTagf("app", "Wake-up dropped, work runs on the next event: %v", err)
	}
}

// runQueued runs everything posted since the last call.
func (a *App) runQueued() {
	a.queueMu.Lock()
	queued := a.queue
	a.queue = nil
	a.queueMu.Unlock()

	for _, fn := range queued {
		fn()
	}
}

// relayout recomputes pane rectangles from the screen size.
func (a *App) relayout() {
	w, h := a.tuiManager.Size()
	a.layout = tui.ComputeLayout(w, h)
	a.editorPane.SetRect(a.layout.Editor)
	a.previewPane.SetRect(a.layout.Preview)
}

// shutdown releases resources in reverse order of creation.
func (a *App) shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	a.editor.Flush()
	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{Modified: a.editor.Modified()})
	if a.editor.Modified() {
		logger.Warnf("Exiting with unsaved changes in %q", a.editor.FilePath())
	}

	a.pluginManager.ShutdownPlugins()
	if a.loadCancel != nil {
		a.loadCancel()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warnf("Closing file watcher: %v", err)
		}
	}
	a.highlighter.Shutdown()
	if err := a.prefs.Close(); err != nil {
		logger.Warnf("Closing preferences: %v", err)
	}
	a.tuiManager.Close()
	logger.Infof("Exiting application.")
}
