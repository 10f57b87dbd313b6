// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/scribe/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	Parser         *string
	Theme          *string
	HistoryLimit   *int
	Debounce       *time.Duration
	ExportDir      *string
	PrefsDB        *string
}

// DefineFlags registers scribe's flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.Parser = fs.String("parser", "", "Markdown parser (gfm, commonmark) - Overrides config file")
	f.Theme = fs.String("theme", "", "Theme name (light, dark or a theme file name)")
	f.HistoryLimit = fs.Int("history", 0, "Maximum undo snapshots - Overrides config file") // 0 means unset
	f.Debounce = fs.Duration("debounce", 0, "Quiet period before typing is recorded in history (e.g. 400ms)")
	f.ExportDir = fs.String("export-dir", "", "Directory for exported documents - Overrides config file")
	f.PrefsDB = fs.String("prefs-db", "", "Path to the preferences database - Overrides config file")
}

// ParseFlags defines and parses the flags from args.
// It returns the remaining non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "parser":
			if *f.Parser != "" {
				cfg.Markdown.Parser = *f.Parser
			}
		case "history":
			if *f.HistoryLimit > 1 {
				cfg.Editor.HistoryLimit = *f.HistoryLimit
			}
		case "debounce":
			if *f.Debounce > 0 {
				cfg.Editor.Debounce = Duration{*f.Debounce}
			}
		case "export-dir":
			cfg.Export.Dir = *f.ExportDir
		case "prefs-db":
			cfg.Storage.PrefsDB = *f.PrefsDB
		}
	})
}

// ThemeOverride returns the --theme value, or "" when the flag was not given.
func (f *Flags) ThemeOverride() string {
	if f.Theme == nil {
		return ""
	}
	return strings.TrimSpace(*f.Theme)
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
