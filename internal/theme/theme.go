// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/scribe/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. Dotted names fall back to their
// parents ("markup.link.url" -> "markup.link" -> "markup"), then to
// "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	for parent := name; ; {
		dot := strings.LastIndex(parent, ".")
		if dot == -1 {
			break
		}
		parent = parent[:dot]
		if style, ok := t.Styles[parent]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Has reports whether the theme defines name exactly.
func (t *Theme) Has(name string) bool {
	_, ok := t.Styles[name]
	return ok
}
