package prefs

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bethropolis/scribe/internal/logger"
)

// Preference keys.
const (
	KeyFont            = "font"
	KeyTheme           = "theme"
	KeyParser          = "parser"
	KeyShowLineNumbers = "show_line_numbers"
	KeyMarkdownContent = "markdown_content"
)

// Defaults holds the value used for every key that was never stored.
var Defaults = map[string]string{
	KeyFont:            "Vazirmatn",
	KeyTheme:           "light",
	KeyParser:          "gfm",
	KeyShowLineNumbers: "false",
	KeyMarkdownContent: "",
}

// Preferences reads and writes preferences through a Store. When the store
// fails to write, it switches to session-only memory and keeps working.
type Preferences struct {
	mu       sync.Mutex
	store    Store
	memory   *MemoryStore
	degraded bool
	onChange func(key, value string)
}

// New wraps store. A nil store gives session-only preferences.
func New(store Store) *Preferences {
	p := &Preferences{store: store, memory: NewMemoryStore()}
	if store == nil {
		p.degraded = true
	}
	return p
}

// Open opens the SQLite store at path. If that fails the returned
// preferences are session-only and the error is logged.
func Open(path string) *Preferences {
	if path == "" {
		logger.Infof("No preference database configured, preferences will not persist")
		return New(nil)
	}
	store, err := OpenSQLite(path)
	if err != nil {
		logger.Warnf("Preferences unavailable, using session-only memory: %v", err)
		return New(nil)
	}
	return New(store)
}

// OnChange registers a callback run after every Set.
func (p *Preferences) OnChange(fn func(key, value string)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Degraded reports whether preferences are held in memory only.
func (p *Preferences) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

// Get returns the value of key, falling back to its default.
func (p *Preferences) Get(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, err := p.memory.Get(key); err == nil {
		return v
	}
	if !p.degraded {
		v, err := p.store.Get(key)
		if err == nil {
			return v
		}
		if !errors.Is(err, ErrNotFound) {
			logger.Warnf("Reading preference %q failed: %v", key, err)
		}
	}
	return Defaults[key]
}

// Set stores value under key. A failed write is logged and the value is
// kept for this session.
func (p *Preferences) Set(key, value string) {
	p.mu.Lock()
	if !p.degraded {
		if err := p.store.Set(key, value); err != nil {
			logger.Warnf("Writing preference %q failed, keeping preferences in memory: %v", key, err)
			p.copyStoreLocked()
			p.degraded = true
		}
	}
	if p.degraded {
		p.memory.Set(key, value)
	}
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(key, value)
	}
}

// copyStoreLocked moves whatever the store still holds into memory so a
// session-only switch keeps the stored values instead of the defaults.
func (p *Preferences) copyStoreLocked() {
	keys, err := p.store.Keys()
	if err != nil {
		logger.Warnf("Listing stored preferences failed: %v", err)
		return
	}
	for _, key := range keys {
		v, err := p.store.Get(key)
		if err != nil {
			continue
		}
		p.memory.Set(key, v)
	}
}

// Bool parses key as a boolean, using the default on malformed values.
func (p *Preferences) Bool(key string) bool {
	b, err := strconv.ParseBool(p.Get(key))
	if err != nil {
		b, _ = strconv.ParseBool(Defaults[key])
	}
	return b
}

// SetBool stores a boolean preference.
func (p *Preferences) SetBool(key string, v bool) {
	p.Set(key, strconv.FormatBool(v))
}

func (p *Preferences) Font() string          { return p.Get(KeyFont) }
func (p *Preferences) Theme() string         { return p.Get(KeyTheme) }
func (p *Preferences) Parser() string        { return p.Get(KeyParser) }
func (p *Preferences) ShowLineNumbers() bool { return p.Bool(KeyShowLineNumbers) }
func (p *Preferences) Draft() string         { return p.Get(KeyMarkdownContent) }

// Close closes the underlying store.
func (p *Preferences) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}
