package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/scribe/internal/core/format"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/markdown"
	"github.com/bethropolis/scribe/internal/plugin"
)

// ErrUsage is wrapped by commands called with the wrong arguments.
var ErrUsage = errors.New("usage")

func usage(text string) error {
	return fmt.Errorf("%w: %s", ErrUsage, text)
}

// RegisterAppCommands registers the built-in ':' commands.
func RegisterAppCommands(api plugin.EditorAPI, app AppAPI) {
	RegisterThemeCommands(api, app)

	register(api, "parser", func(args []string) error {
		if len(args) == 0 {
			app.SetStatusMessage("Parser: %s (available: %s)", app.Parser(), strings.Join(markdown.Parsers(), ", "))
			return nil
		}
		if err := app.SetParser(args[0]); err != nil {
			return err
		}
		app.SetStatusMessage("Parser set to: %s", app.Parser())
		return nil
	})

	register(api, "font", func(args []string) error {
		if len(args) == 0 {
			app.SetStatusMessage("Export font: %s", app.Font())
			return nil
		}
		name := strings.Join(args, " ")
		app.SetFont(name)
		app.SetStatusMessage("Export font set to: %s", name)
		return nil
	})

	register(api, "numbers", func(args []string) error {
		if app.ToggleLineNumbers() {
			app.SetStatusMessage("Line numbers on")
		} else {
			app.SetStatusMessage("Line numbers off")
		}
		return nil
	})

	register(api, "sync", func(args []string) error {
		on := !app.ScrollSync()
		if len(args) > 0 {
			switch args[0] {
			case "on":
				on = true
			case "off":
				on = false
			default:
				return usage("sync [on|off]")
			}
		}
		app.SetScrollSync(on)
		if on {
			app.SetStatusMessage("Scroll sync on")
		} else {
			app.SetStatusMessage("Scroll sync off")
		}
		return nil
	})

	register(api, "open", func(args []string) error {
		if len(args) == 0 {
			return usage("open <path>")
		}
		path := strings.Join(args, " ")
		if err := app.Open(path); err != nil {
			return err
		}
		app.SetStatusMessage("Loading %s...", path)
		return nil
	})

	save := func(args []string) error {
		path, err := app.SaveAs(strings.Join(args, " "))
		if err != nil {
			return err
		}
		app.SetStatusMessage("Saved %s", path)
		return nil
	}
	register(api, "save", save)
	register(api, "w", save)

	register(api, "export", func(args []string) error {
		if len(args) != 1 || (args[0] != "md" && args[0] != "html") {
			return usage("export md|html")
		}
		path, err := app.Export(args[0])
		if err != nil {
			return err
		}
		app.SetStatusMessage("Exported %s", path)
		return nil
	})

	register(api, "format", func(args []string) error {
		if len(args) != 1 {
			return usage("format <directive>")
		}
		d, err := format.ParseDirective(args[0])
		if err != nil {
			return err
		}
		api.ApplyDirective(d)
		return nil
	})

	register(api, "help", func(args []string) error {
		app.SetStatusMessage("Commands: %s", strings.Join(app.Commands(), " "))
		return nil
	})

	register(api, "q", func(args []string) error { return app.Quit(false) })
	register(api, "q!", func(args []string) error { return app.Quit(true) })
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	register(api, "theme", func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}
		themeName := strings.Join(args, " ")
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	})

	register(api, "themes", func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	})
}

func register(api plugin.EditorAPI, name string, fn plugin.CommandFunc) {
	if err := api.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}
