package commands

import (
	"errors"
	"testing"

	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/markdown"
	"github.com/bethropolis/scribe/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApp struct {
	*plugintest.API
	parser   string
	font     string
	numbers  bool
	sync     bool
	opened   []string
	savedAs  []string
	exported []string
	modified bool
	quit     bool
}

func (f *fakeApp) Parser() string { return f.parser }
func (f *fakeApp) SetParser(name string) error {
	if name != markdown.ParserGFM && name != markdown.ParserCommonMark {
		return markdown.ErrUnknownParser
	}
	f.parser = name
	return nil
}
func (f *fakeApp) Font() string            { return f.font }
func (f *fakeApp) SetFont(name string)     { f.font = name }
func (f *fakeApp) ToggleLineNumbers() bool { f.numbers = !f.numbers; return f.numbers }
func (f *fakeApp) ScrollSync() bool        { return f.sync }
func (f *fakeApp) SetScrollSync(on bool)   { f.sync = on }
func (f *fakeApp) Open(path string) error  { f.opened = append(f.opened, path); return nil }
func (f *fakeApp) Export(kind string) (string, error) {
	f.exported = append(f.exported, kind)
	return "/out/document." + kind, nil
}
func (f *fakeApp) SaveAs(path string) (string, error) {
	f.savedAs = append(f.savedAs, path)
	if path == "" {
		return "", errors.New("no file name")
	}
	return path, nil
}
func (f *fakeApp) Quit(force bool) error {
	if f.modified && !force {
		return errors.New("unsaved changes")
	}
	f.quit = true
	return nil
}

func (f *fakeApp) Commands() []string { return []string{"help", "q", "theme"} }

func setup(t *testing.T) (*plugintest.API, *fakeApp) {
	t.Helper()
	api := plugintest.New("hello")
	app := &fakeApp{API: api, parser: markdown.ParserGFM, font: "Vazirmatn", sync: true}
	RegisterAppCommands(api, app)
	return api, app
}

func TestThemeCommands(t *testing.T) {
	api, _ := setup(t)

	require.NoError(t, api.Run("theme", "dark"))
	assert.Equal(t, "Theme set to: dark", api.LastMessage())
	assert.Equal(t, "dark", api.GetTheme().Name)

	err := api.Run("theme", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available: dark, light")

	require.NoError(t, api.Run("themes"))
	assert.Equal(t, "Available themes: dark, light", api.LastMessage())
}

func TestPreferenceCommands(t *testing.T) {
	api, app := setup(t)

	require.NoError(t, api.Run("parser", "commonmark"))
	assert.Equal(t, "commonmark", app.parser)
	assert.ErrorIs(t, api.Run("parser", "marked"), markdown.ErrUnknownParser)

	require.NoError(t, api.Run("font", "Noto", "Sans"))
	assert.Equal(t, "Noto Sans", app.font)

	require.NoError(t, api.Run("numbers"))
	assert.True(t, app.numbers)

	require.NoError(t, api.Run("sync"))
	assert.False(t, app.sync)
	require.NoError(t, api.Run("sync", "on"))
	assert.True(t, app.sync)
	assert.ErrorIs(t, api.Run("sync", "maybe"), ErrUsage)
}

func TestFileCommands(t *testing.T) {
	api, app := setup(t)

	assert.ErrorIs(t, api.Run("open"), ErrUsage)
	require.NoError(t, api.Run("open", "notes.md"))
	assert.Equal(t, []string{"notes.md"}, app.opened)

	require.NoError(t, api.Run("w", "out.md"))
	assert.Equal(t, "Saved out.md", api.LastMessage())
	assert.Error(t, api.Run("save"))

	require.NoError(t, api.Run("export", "html"))
	assert.Equal(t, "Exported /out/document.html", api.LastMessage())
	assert.ErrorIs(t, api.Run("export", "pdf"), ErrUsage)
}

func TestFormatCommand(t *testing.T) {
	api, _ := setup(t)
	require.NoError(t, api.Run("format", "bold"))
	require.NoError(t, api.Run("format", "ul"))
	assert.Equal(t, []format.Directive{format.Strong, format.UnorderedList}, api.Directives)
	assert.ErrorIs(t, api.Run("format", "blink"), format.ErrUnknownDirective)
}

func TestQuitCommands(t *testing.T) {
	api, app := setup(t)
	app.modified = true
	assert.Error(t, api.Run("q"))
	assert.False(t, app.quit)
	require.NoError(t, api.Run("q!"))
	assert.True(t, app.quit)
}

func TestHelpListsCommands(t *testing.T) {
	api, _ := setup(t)

	require.NoError(t, api.Run("help"))
	assert.Equal(t, "Commands: help q theme", api.LastMessage())
}
