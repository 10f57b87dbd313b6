package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, cfg.Editor.HistoryLimit)
	assert.Equal(t, DefaultDebounce, cfg.Editor.Debounce.Duration)
	assert.Equal(t, DefaultScrollSuppress, cfg.Scroll.Suppress.Duration)
	assert.Equal(t, "gfm", cfg.Markdown.Parser)
	assert.True(t, cfg.Scroll.Sync)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[editor]
history_limit = 50
debounce = "250ms"
default_direction = "LTR"

[scroll]
manual_only = false
suppress = "80ms"

[markdown]
parser = "CommonMark"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Editor.HistoryLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Editor.Debounce.Duration)
	assert.Equal(t, "ltr", cfg.Editor.DefaultDirection)
	assert.False(t, cfg.Scroll.ManualOnly)
	assert.Equal(t, 80*time.Millisecond, cfg.Scroll.Suppress.Duration)
	assert.Equal(t, "commonmark", cfg.Markdown.Parser)
}

func TestLoadInvalidValuesAreReset(t *testing.T) {
	path := writeConfig(t, `
[editor]
history_limit = 1
heading_level = 9
default_direction = "sideways"
tab_width = -2
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, cfg.Editor.HistoryLimit)
	assert.Equal(t, DefaultHeadingLevel, cfg.Editor.HeadingLevel)
	assert.Equal(t, DefaultDirection, cfg.Editor.DefaultDirection)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
}

func TestLoadBrokenFileReturnsDefaultsAndError(t *testing.T) {
	path := writeConfig(t, `[editor`)
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultHistoryLimit, cfg.Editor.HistoryLimit)
}

func TestBadDurationIsAnError(t *testing.T) {
	path := writeConfig(t, "[editor]\ndebounce = \"soon\"\n")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, "[editor]\nhistory_limit = 30\n")

	var flags Flags
	fs := flag.NewFlagSet("scribe", flag.ContinueOnError)
	rest, err := flags.ParseFlags(fs, []string{
		"--history", "70",
		"--debounce", "100ms",
		"--parser", "commonmark",
		"--log-tags", "history, scroll",
		"--theme", "dark",
		"notes.md",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.md"}, rest)

	cfg, err := Load(path, &flags)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Editor.HistoryLimit)
	assert.Equal(t, 100*time.Millisecond, cfg.Editor.Debounce.Duration)
	assert.Equal(t, "commonmark", cfg.Markdown.Parser)
	assert.Equal(t, []string{"history", "scroll"}, cfg.Logger.EnabledTags)
	assert.Equal(t, "dark", flags.ThemeOverride())
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "[editor]\nhistory_limit = 30\n")

	var flags Flags
	_, err := flags.ParseFlags(flag.NewFlagSet("scribe", flag.ContinueOnError), nil)
	require.NoError(t, err)

	cfg, err := Load(path, &flags)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Editor.HistoryLimit)
	assert.Empty(t, flags.ThemeOverride())
}
