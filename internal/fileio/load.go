// Package fileio reads documents, writes exports and watches the open file
// for changes made by other programs.
package fileio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/scribe/internal/logger"
)

var (
	// ErrNotRegular is returned when a path names a directory or device.
	ErrNotRegular = errors.New("not a regular file")
	// ErrNotText is returned for files that are not valid UTF-8.
	ErrNotText = errors.New("file is not UTF-8 text")
)

// LoadResult is delivered to a LoadAsync callback.
type LoadResult struct {
	Path string
	Text string
	Err  error
}

// ReadDocument reads a UTF-8 text file, normalising line endings to \n.
func ReadDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("opening %s: %w", path, ErrNotRegular)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: %w", path, ErrNotText)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimPrefix(text, "\ufeff"), nil
}

// LoadAsync reads path on a new goroutine and passes the result to done.
// done is not called if ctx is cancelled first.
func LoadAsync(ctx context.Context, path string, done func(LoadResult)) {
	go func() {
		text, err := ReadDocument(path)
		if ctx.Err() != nil {
			logger.DebugTagf("fileio", "Load of %s cancelled", path)
			return
		}
		if err != nil {
			logger.Warnf("Failed to load %s: %v", path, err)
		} else {
			logger.Infof("Loaded %s (%d bytes)", path, len(text))
		}
		done(LoadResult{Path: path, Text: text, Err: err})
	}()
}
