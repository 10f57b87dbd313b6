// Package config loads scribe's TOML configuration and applies flag overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/scribe/internal/logger"
)

// Duration is a time.Duration that decodes from TOML strings such as "400ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	Editor   EditorConfig   `toml:"editor"`
	Scroll   ScrollConfig   `toml:"scroll"`
	Markdown MarkdownConfig `toml:"markdown"`
	Storage  StorageConfig  `toml:"storage"`
	Export   ExportConfig   `toml:"export"`
	Theme    ThemeConfig    `toml:"theme"`
}

// EditorConfig holds editing and history settings.
type EditorConfig struct {
	TabWidth         int      `toml:"tab_width"`
	HistoryLimit     int      `toml:"history_limit"`
	Debounce         Duration `toml:"debounce"`
	HeadingLevel     int      `toml:"heading_level"`
	DefaultDirection string   `toml:"default_direction"` // "ltr" or "rtl"
}

// ScrollConfig controls editor/preview scroll synchronization.
type ScrollConfig struct {
	Sync        bool     `toml:"sync"`
	ManualOnly  bool     `toml:"manual_only"`
	Suppress    Duration `toml:"suppress"`
	ManualQuiet Duration `toml:"manual_quiet"`
}

// MarkdownConfig selects the default parser flavour.
type MarkdownConfig struct {
	Parser    string `toml:"parser"`
	HardWraps bool   `toml:"hard_wraps"`
}

// StorageConfig locates the preference database.
type StorageConfig struct {
	PrefsDB string `toml:"prefs_db"`
}

// ExportConfig controls where exported files land.
type ExportConfig struct {
	Dir      string `toml:"dir"`
	BaseName string `toml:"basename"`
}

// ThemeConfig points at a directory of user TOML themes.
type ThemeConfig struct {
	Dir string `toml:"dir"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:         DefaultTabWidth,
			HistoryLimit:     DefaultHistoryLimit,
			Debounce:         Duration{DefaultDebounce},
			HeadingLevel:     DefaultHeadingLevel,
			DefaultDirection: DefaultDirection,
		},
		Scroll: ScrollConfig{
			Sync:        true,
			ManualOnly:  true,
			Suppress:    Duration{DefaultScrollSuppress},
			ManualQuiet: Duration{DefaultManualQuiet},
		},
		Markdown: MarkdownConfig{
			Parser:    DefaultParser,
			HardWraps: true,
		},
		Export: ExportConfig{
			BaseName: DefaultExportBaseName,
		},
	}
}

// DefaultDir returns the per-user configuration directory for scribe.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName), nil
}

// loadFromFile decodes path over cfg. A missing file is not an error.
func loadFromFile(path string, cfg *Config) error {
	metadata, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.WarnTagf("config", "Config file '%s': unrecognized keys: %v", path, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.HistoryLimit <= 1 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Editor.Debounce.Duration <= 0 {
		c.Editor.Debounce = defaults.Editor.Debounce
	}
	if c.Editor.HeadingLevel < 1 || c.Editor.HeadingLevel > 6 {
		c.Editor.HeadingLevel = defaults.Editor.HeadingLevel
	}
	switch strings.ToLower(c.Editor.DefaultDirection) {
	case "ltr", "rtl":
		c.Editor.DefaultDirection = strings.ToLower(c.Editor.DefaultDirection)
	default:
		c.Editor.DefaultDirection = defaults.Editor.DefaultDirection
	}

	if c.Scroll.Suppress.Duration <= 0 {
		c.Scroll.Suppress = defaults.Scroll.Suppress
	}
	if c.Scroll.ManualQuiet.Duration <= 0 {
		c.Scroll.ManualQuiet = defaults.Scroll.ManualQuiet
	}

	c.Markdown.Parser = strings.ToLower(strings.TrimSpace(c.Markdown.Parser))
	if c.Markdown.Parser == "" {
		c.Markdown.Parser = defaults.Markdown.Parser
	}
	if strings.TrimSpace(c.Export.BaseName) == "" {
		c.Export.BaseName = defaults.Export.BaseName
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds the effective configuration: defaults, then the TOML file
// (explicit path or the default location), then flag overrides, then
// validation. The returned config is always usable; the error reports a
// config file that could not be parsed.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		if dir, err := DefaultDir(); err == nil {
			path = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var loadErr error
	if path != "" {
		fileCfg := NewDefaultConfig()
		if err := loadFromFile(path, fileCfg); err != nil {
			loadErr = err
		} else {
			cfg = fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, loadErr
}
