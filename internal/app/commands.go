package app

import "github.com/bethropolis/scribe/internal/commands"

// registerAppCommands registers the built-in ':' commands.
func registerAppCommands(app *App) {
	commands.RegisterAppCommands(app.editorAPI, app.editorAPI)
}
