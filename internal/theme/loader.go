// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef is a single style definition in a theme file.
type TomlStyleDef struct {
	Fg            *string `toml:"fg"` // pointers detect missing values
	Bg            *string `toml:"bg"`
	Bold          *bool   `toml:"bold"`
	Italic        *bool   `toml:"italic"`
	Underline     *bool   `toml:"underline"`
	Reverse       *bool   `toml:"reverse"`
	StrikeThrough *bool   `toml:"strikethrough"`
}

// TomlTheme is the structure of a theme file.
//
//	name = "solarized"
//	is_dark = true
//	inherits = "dark"
//
//	[styles.Default]
//	fg = "#839496"
//	bg = "#002b36"
//
//	[styles."markup.heading"]
//	fg = "#b58900"
//	bold = true
type TomlTheme struct {
	Name     string                  `toml:"name"`
	IsDark   bool                    `toml:"is_dark"`
	Inherits string                  `toml:"inherits"`
	Styles   map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML file and converts it to a Theme.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return ParseTheme(name, string(data))
}

// ParseTheme converts TOML theme source to a Theme. fallbackName is used
// when the file has no name. Styles a file leaves out come from the
// built-in theme it inherits ("light" unless is_dark or inherits says
// otherwise).
func ParseTheme(fallbackName, data string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme '%s': %w", fallbackName, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", fallbackName, metadata.Undecoded())
	}

	if tomlTheme.Name == "" {
		tomlTheme.Name = fallbackName
		logger.Debugf("Theme missing 'name', using '%s'", fallbackName)
	}

	parent := &Light
	if tomlTheme.IsDark {
		parent = &Dark
	}
	switch strings.ToLower(tomlTheme.Inherits) {
	case "":
	case LightName:
		parent = &Light
	case DarkName:
		parent = &Dark
	default:
		logger.Warnf("Theme '%s': unknown parent '%s', inheriting from '%s'", tomlTheme.Name, tomlTheme.Inherits, parent.Name)
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style, len(parent.Styles)),
	}
	for k, v := range parent.Styles {
		theme.Styles[k] = v
	}

	baseStyle := parent.GetStyle("Default")
	if def, ok := tomlTheme.Styles["Default"]; ok {
		style, parseErr := convertTomlStyle(def, tcell.StyleDefault)
		if parseErr != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, keeping parent's: %v", theme.Name, parseErr)
		} else {
			baseStyle = style
		}
	}
	theme.Styles["Default"] = baseStyle

	for name, tomlStyle := range tomlTheme.Styles {
		if name == "Default" {
			continue
		}
		style, err := convertTomlStyle(tomlStyle, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	logger.Debugf("Successfully loaded theme '%s'", theme.Name)
	return theme, nil
}

// convertTomlStyle converts a TOML definition to a tcell.Style, inheriting
// unset properties from baseStyle.
func convertTomlStyle(tomlStyle TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle

	if tomlStyle.Fg != nil {
		color, err := parseColorString(*tomlStyle.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *tomlStyle.Fg, err)
		}
		style = style.Foreground(color)
	}
	if tomlStyle.Bg != nil {
		color, err := parseColorString(*tomlStyle.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *tomlStyle.Bg, err)
		}
		style = style.Background(color)
	}

	if tomlStyle.Bold != nil {
		style = style.Bold(*tomlStyle.Bold)
	}
	if tomlStyle.Italic != nil {
		style = style.Italic(*tomlStyle.Italic)
	}
	if tomlStyle.Underline != nil {
		style = style.Underline(*tomlStyle.Underline)
	}
	if tomlStyle.Reverse != nil {
		style = style.Reverse(*tomlStyle.Reverse)
	}
	if tomlStyle.StrikeThrough != nil {
		style = style.StrikeThrough(*tomlStyle.StrikeThrough)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, "reset", "default" and tcell's named
// colors.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
