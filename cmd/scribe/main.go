// cmd/scribe/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	stlog "log" // for errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/scribe/internal/app"
	"github.com/bethropolis/scribe/internal/config"
	"github.com/bethropolis/scribe/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	args, err := flags.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		stlog.Fatalf("Error parsing flags: %v", err)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, cfgErr := config.Load(*flags.ConfigFilePath, &flags)

	// --- Logger Initialization ---
	logOutput, closeLog := openLogOutput(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	if cfgErr != nil {
		logger.Warnf("Config file ignored: %v", cfgErr)
	}
	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting with the saved draft.")
	}

	// --- Create and Run App ---
	scribeApp, err := app.NewApp(cfg, filePath, app.Options{Theme: flags.ThemeOverride()})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		closeLog()
		stlog.Fatalf("Error initializing application: %v", err)
	}

	if err := scribeApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLogOutput resolves the log destination. "-" is stderr; an empty path
// means the log file in the user config directory. Logging is discarded if
// the file cannot be opened, since the terminal belongs to the editor.
func openLogOutput(path string) (io.Writer, func()) {
	noop := func() {}
	if path == "-" {
		return os.Stderr, noop
	}
	if path == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			stlog.Printf("Warning: logging disabled: %v", err)
			return io.Discard, noop
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			stlog.Printf("Warning: logging disabled: %v", err)
			return io.Discard, noop
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		stlog.Printf("Warning: failed to open log file '%s': %v", path, err)
		return io.Discard, noop
	}
	var closed bool
	return logFile, func() {
		if !closed {
			closed = true
			logFile.Close()
		}
	}
}
