package commands

import "github.com/bethropolis/scribe/internal/theme"

// ThemeAPI extends the commands functionality to support theme operations
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// AppAPI is what the built-in commands need beyond themes: preferences,
// files and view state.
type AppAPI interface {
	ThemeAPI
	Parser() string
	SetParser(name string) error
	Font() string
	SetFont(name string)
	ToggleLineNumbers() bool
	ScrollSync() bool
	SetScrollSync(on bool)
	// Open starts loading path; the result arrives later.
	Open(path string) error
	// SaveAs writes the document to path, or to its current path when empty.
	SaveAs(path string) (string, error)
	Export(kind string) (string, error)
	// Quit exits; without force it refuses while there are unsaved changes.
	Quit(force bool) error
	// Commands lists every registered ':' command.
	Commands() []string
}
