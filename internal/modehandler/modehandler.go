// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/scribe/internal/core"
	"github.com/bethropolis/scribe/internal/input"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/plugin"
	"github.com/bethropolis/scribe/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModePrompt           // typing a ':' command in the status bar
)

// Host is the part of the application the mode handler drives but does not
// own: files, view toggles and shutdown.
type Host interface {
	// Save writes the document and returns the path written.
	Save() (string, error)
	// Export writes the document as "html" or "md" and returns the path.
	Export(kind string) (string, error)
	Quit()
	ToggleLineNumbers() bool
	ToggleTheme() string
	ToggleScrollSync() bool
	// PageSize is the number of editor lines visible at once.
	PageSize() int
	// ManualScroll marks the start of a user initiated scroll.
	ManualScroll()
}

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	host           Host

	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	Host           Host
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.StatusBar == nil || cfg.Host == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.InputProcessor == nil {
		cfg.InputProcessor = input.NewInputProcessor()
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		host:           cfg.Host,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(actionEvent)
	case ModePrompt:
		return mh.handleActionPrompt(actionEvent)
	default:
		logger.Warnf("Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// ExecuteCommand parses and runs a command line such as "theme dark".
func (mh *ModeHandler) ExecuteCommand(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetErrorMessage("Unknown command: %s", cmdName)
		return fmt.Errorf("unknown command %q", cmdName)
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetErrorMessage("%s: %v", cmdName, err)
		return err
	}
	return nil
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("command name %q contains whitespace", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists registered command names in order.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, "" outside the prompt.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModePrompt {
		return string(mh.cmdBuffer)
	}
	return ""
}
