// plugins/docstats/docstats.go
package docstats

import (
	"fmt"

	"github.com/bethropolis/scribe/internal/core/stats"
	"github.com/bethropolis/scribe/internal/plugin"
)

// Ensure DocStats implements plugin.Plugin
var _ plugin.Plugin = (*DocStats)(nil)

// DocStats adds the :stats command, a one-shot summary of the document.
type DocStats struct {
	api plugin.EditorAPI
}

// New creates a new instance of the DocStats plugin.
func New() *DocStats {
	return &DocStats{}
}

// Name returns the unique name of the plugin.
func (p *DocStats) Name() string {
	return "docstats"
}

// Initialize registers the :stats and :wc commands.
func (p *DocStats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	for _, name := range []string{"stats", "wc"} {
		if err := api.RegisterCommand(name, p.executeStats); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", name, err)
		}
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *DocStats) Shutdown() error {
	return nil
}

// executeStats counts the whole document, or the selection with "sel".
func (p *DocStats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("docstats plugin not initialized with API")
	}
	text, scope := p.api.Text(), "Document"
	if len(args) > 0 && args[0] == "sel" {
		sel := p.api.Selection().Normalize()
		if sel.Empty() {
			return fmt.Errorf("nothing selected")
		}
		runes := []rune(text)
		text, scope = string(runes[sel.Start:sel.End]), "Selection"
	}
	s := stats.Compute(text)
	p.api.SetStatusMessage("%s: %d lines, %d words, %d letters, %d chars, %s",
		scope, s.Lines, s.Words, s.Letters, s.Characters, s.Size)
	return nil
}
