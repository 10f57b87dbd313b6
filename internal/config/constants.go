package config

import "time"

// Base application details
const AppName = "scribe"
const Version = "0.3.0"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "scribe.log"
const DefaultPrefsFileName = "prefs.db"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 3 * time.Second

// Editing
const DefaultTabWidth = 4
const DefaultHistoryLimit = 100
const DefaultDebounce = 400 * time.Millisecond
const DefaultHeadingLevel = 2
const DefaultDirection = "rtl"

// Scroll synchronization
const DefaultScrollSuppress = 50 * time.Millisecond
const DefaultManualQuiet = 1 * time.Second

// Markdown / export
const DefaultParser = "gfm"
const DefaultExportBaseName = "document"
