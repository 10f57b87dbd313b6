package docstats

import (
	"testing"

	"github.com/bethropolis/scribe/internal/plugin/plugintest"
	"github.com/bethropolis/scribe/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCommand(t *testing.T) {
	api := plugintest.New("hello world\nسلام")
	p := New()
	require.NoError(t, p.Initialize(api))

	require.NoError(t, api.Run("stats"))
	assert.Contains(t, api.LastMessage(), "Document: 2 lines, 3 words, 14 letters")

	require.NoError(t, api.Run("wc"))
	assert.Len(t, api.Messages, 2)
}

func TestStatsOfSelection(t *testing.T) {
	api := plugintest.New("hello world")
	p := New()
	require.NoError(t, p.Initialize(api))

	assert.Error(t, api.Run("stats", "sel"))

	api.Sel = types.Selection{Start: 6, End: 11}
	require.NoError(t, api.Run("stats", "sel"))
	assert.Contains(t, api.LastMessage(), "Selection: 1 lines, 1 words, 5 letters, 5 chars")
}
