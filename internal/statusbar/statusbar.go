// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/core/stats"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/theme"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleModified  tcell.Style // Style for the modified indicator
	StyleMessage   tcell.Style // Style for temporary messages
	StyleError     tcell.Style // Style for temporary error messages
	StylePrompt    tcell.Style // Style for the command prompt
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return ConfigFromTheme(&theme.Light)
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	return Config{
		StyleDefault:   th.GetStyle("StatusBar"),
		StyleModified:  th.GetStyle("StatusBarModified"),
		StyleMessage:   th.GetStyle("StatusBarMessage"),
		StyleError:     th.GetStyle("StatusBarError"),
		StylePrompt:    th.GetStyle("Prompt"),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar is the single status line at the bottom of the screen.
type StatusBar struct {
	config Config
	clock  clock.Clock
	mu     sync.RWMutex

	filePath   string
	cursorPos  types.Position
	isModified bool
	stats      stats.Stats
	history    event.HistoryData
	dir        direction.Direction
	parser     string

	promptActive bool
	promptText   string

	tempMessage     string
	tempIsError     bool
	tempMessageTime time.Time
}

// New creates a StatusBar. A nil clock means the wall clock.
func New(cfg Config, clk clock.Clock) *StatusBar {
	if clk == nil {
		clk = clock.Real{}
	}
	if cfg.MessageTimeout <= 0 {
		cfg.MessageTimeout = config.MessageTimeout
	}
	return &StatusBar{config: cfg, clock: clk}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(cfg Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if cfg.MessageTimeout <= 0 {
		cfg.MessageTimeout = sb.config.MessageTimeout
	}
	sb.config = cfg
}

// MessageTimeout returns how long temporary messages stay visible.
func (sb *StatusBar) MessageTimeout() time.Duration {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.config.MessageTimeout
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position and the direction of its line.
func (sb *StatusBar) SetCursorInfo(pos types.Position, dir direction.Direction) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.dir = dir
}

// SetStats updates the document statistics.
func (sb *StatusBar) SetStats(s stats.Stats) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.stats = s
}

// SetHistory updates the undo/redo indicator.
func (sb *StatusBar) SetHistory(h event.HistoryData) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.history = h
}

// SetParser shows the active markdown parser.
func (sb *StatusBar) SetParser(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.parser = name
}

// SetPrompt shows the command prompt instead of the status line while
// active is true.
func (sb *StatusBar) SetPrompt(text string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptText = text
	sb.promptActive = active
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetErrorMessage displays an error for the configured duration.
func (sb *StatusBar) SetErrorMessage(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isError bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempIsError = isError
	sb.tempMessageTime = sb.clock.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, if any.
func (sb *StatusBar) Message() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.messageActiveLocked() {
		return "", false
	}
	return sb.tempMessage, true
}

// messageActiveLocked expires old messages. Callers hold the write lock.
func (sb *StatusBar) messageActiveLocked() bool {
	if sb.tempMessageTime.IsZero() {
		return false
	}
	if sb.clock.Now().Sub(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		return false
	}
	return true
}

// leftText builds the file and cursor part of the status line.
func (sb *StatusBar) leftText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	return fmt.Sprintf(" %s -- Ln %d, Col %d -- %s", fPath, sb.cursorPos.Line+1, sb.cursorPos.Col+1, sb.dir)
}

// rightText builds the statistics and history part of the status line.
func (sb *StatusBar) rightText() string {
	undo := "-"
	if sb.history.CanUndo {
		undo = "undo"
	}
	redo := "-"
	if sb.history.CanRedo {
		redo = "redo"
	}
	parser := ""
	if sb.parser != "" {
		parser = sb.parser + " | "
	}
	return fmt.Sprintf("%d words, %d chars, %d letters, %d lines, %s | %s%s/%s %d/%d ",
		sb.stats.Words, sb.stats.Characters, sb.stats.Letters, sb.stats.Lines, sb.stats.Size,
		parser, undo, redo, sb.history.Cursor+1, sb.history.Len)
}

// Draw renders the status bar on row y.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 {
		return
	}

	sb.mu.Lock()
	var left, right string
	style := sb.config.StyleDefault
	leftStyle := style
	switch {
	case sb.promptActive:
		left = ":" + sb.promptText
		style = sb.config.StylePrompt
		leftStyle = style
	case sb.messageActiveLocked():
		left = " " + sb.tempMessage
		leftStyle = sb.config.StyleMessage
		if sb.tempIsError {
			leftStyle = sb.config.StyleError
		}
		right = sb.rightText()
	default:
		left = sb.leftText()
		if sb.isModified {
			left += " [+]"
			leftStyle = sb.config.StyleModified
		}
		right = sb.rightText()
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	leftWidth := uniseg.StringWidth(left)
	rightWidth := uniseg.StringWidth(right)
	if right != "" && leftWidth+1+rightWidth <= width {
		drawText(screen, width-rightWidth, y, width, right, style)
	}
	drawText(screen, 0, y, width, left, leftStyle)
}

// drawText draws text from x, clipping at maxX. It returns the next column.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}

// Texts returns the plain left and right parts of the current line.
func (sb *StatusBar) Texts() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.promptActive {
		return ":" + sb.promptText, ""
	}
	if sb.messageActiveLocked() {
		return " " + sb.tempMessage, sb.rightText()
	}
	left := sb.leftText()
	if sb.isModified {
		left += " [+]"
	}
	return left, sb.rightText()
}
