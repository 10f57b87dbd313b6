package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/scribe/internal/clock"
	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/bethropolis/scribe/internal/core/stats"
	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBar() (*StatusBar, *clock.Manual) {
	clk := clock.NewManual(time.Unix(100, 0))
	return New(DefaultConfig(), clk), clk
}

func TestStatusLineContents(t *testing.T) {
	sb, _ := newBar()
	sb.SetFileInfo("notes.md", true)
	sb.SetCursorInfo(types.Position{Line: 2, Col: 4}, direction.RTL)
	sb.SetStats(stats.Compute("hello world"))
	sb.SetHistory(event.HistoryData{Cursor: 1, Len: 3, CanUndo: true})
	sb.SetParser("gfm")

	left, right := sb.Texts()
	assert.Equal(t, " notes.md -- Ln 3, Col 5 -- rtl [+]", left)
	assert.Contains(t, right, "2 words, 11 chars")
	assert.Contains(t, right, "gfm | undo/- 2/3")
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb, clk := newBar()
	sb.SetTemporaryMessage("Saved %s", "a.md")

	msg, ok := sb.Message()
	require.True(t, ok)
	assert.Equal(t, "Saved a.md", msg)

	clk.Advance(sb.MessageTimeout() + time.Millisecond)
	_, ok = sb.Message()
	assert.False(t, ok)
	left, _ := sb.Texts()
	assert.True(t, strings.HasPrefix(left, " [No Name]"))
}

func TestPromptOverridesEverything(t *testing.T) {
	sb, _ := newBar()
	sb.SetErrorMessage("boom")
	sb.SetPrompt("theme dark", true)
	left, right := sb.Texts()
	assert.Equal(t, ":theme dark", left)
	assert.Empty(t, right)

	sb.SetPrompt("", false)
	left, _ = sb.Texts()
	assert.Equal(t, " boom", left)
}

func TestDrawWritesRow(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 3)

	sb, _ := newBar()
	sb.SetFileInfo("doc.md", false)
	sb.Draw(screen, 2, 80)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var row strings.Builder
	for x := 0; x < w; x++ {
		c := cells[2*w+x]
		if len(c.Runes) > 0 {
			row.WriteRune(c.Runes[0])
		}
	}
	assert.Contains(t, row.String(), "doc.md -- Ln 1, Col 1")
}
