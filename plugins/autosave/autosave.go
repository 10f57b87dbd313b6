// Package autosave keeps the scratch document in the preference store so it
// survives restarts.
package autosave

import (
	"fmt"
	"sync"

	"github.com/bethropolis/scribe/internal/event"
	"github.com/bethropolis/scribe/internal/logger"
	"github.com/bethropolis/scribe/internal/plugin"
	"github.com/bethropolis/scribe/internal/prefs"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

// AutoSave writes the draft whenever history commits or restores a snapshot. Documents
// opened from a file are left alone; the file itself is their storage.
type AutoSave struct {
	api plugin.EditorAPI

	mu      sync.Mutex
	enabled bool
	last    string // draft text last written
	subs    []event.Subscription
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{enabled: true}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize subscribes to history commits and undo/redo, and registers
// :draft.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.last = api.GetPref(prefs.KeyMarkdownContent)
	for _, t := range []event.Type{event.TypeHistoryCommitted, event.TypeHistoryApplied} {
		p.subs = append(p.subs, api.SubscribeEvent(t, func(event.Event) bool {
			p.save()
			return false
		}))
	}
	if err := api.RegisterCommand("draft", p.executeDraft); err != nil {
		return fmt.Errorf("failed to register 'draft' command: %w", err)
	}
	logger.Debugf("%s: initialized", p.Name())
	return nil
}

// Shutdown writes the final draft.
func (p *AutoSave) Shutdown() error {
	if p.api != nil {
		p.save()
	}
	return nil
}

// save stores the scratch text when it changed since the last write.
func (p *AutoSave) save() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.api.FilePath() != "" {
		return
	}
	text := p.api.Text()
	if text == p.last {
		return
	}
	p.api.SetPref(prefs.KeyMarkdownContent, text)
	p.last = text
	logger.DebugTagf("autosave", "Draft saved (%d bytes)", len(text))
}

// executeDraft handles ":draft on|off|clear".
func (p *AutoSave) executeDraft(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: draft on|off|clear")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch args[0] {
	case "on":
		p.enabled = true
		p.api.SetStatusMessage("Draft autosave on")
	case "off":
		p.enabled = false
		p.api.SetStatusMessage("Draft autosave off")
	case "clear":
		p.api.SetPref(prefs.KeyMarkdownContent, "")
		p.last = ""
		p.api.SetStatusMessage("Draft cleared")
	default:
		return fmt.Errorf("usage: draft on|off|clear")
	}
	return nil
}
