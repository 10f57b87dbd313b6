package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/scribe/internal/logger"
)

// MIME types of the export formats.
const (
	MIMEMarkdown = "text/markdown;charset=utf-8"
	MIMEHTML     = "text/html;charset=utf-8"
)

// Blob is a named document ready to be written out.
type Blob struct {
	Name     string
	MIMEType string
	Data     []byte
}

// MarkdownBlob wraps the raw document text.
func MarkdownBlob(baseName, text string) Blob {
	return Blob{Name: baseName + ".md", MIMEType: MIMEMarkdown, Data: []byte(text)}
}

// HTMLBlob wraps a rendered standalone HTML page.
func HTMLBlob(baseName string, page []byte) Blob {
	return Blob{Name: baseName + ".html", MIMEType: MIMEHTML, Data: page}
}

// BaseName derives an export base name from the document path, or returns
// fallback when the document has none.
func BaseName(docPath, fallback string) string {
	if docPath == "" {
		return fallback
	}
	base := filepath.Base(docPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return fallback
	}
	return base
}

// Exporter writes blobs into a directory.
type Exporter struct {
	dir string
}

// NewExporter returns an exporter for dir. An empty dir means the working
// directory.
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string { return e.dir }

// Write stores the blob and returns the written path.
func (e *Exporter) Write(b Blob) (string, error) {
	if b.Name == "" || filepath.Base(b.Name) != b.Name {
		return "", fmt.Errorf("invalid export name %q", b.Name)
	}
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(e.dir, b.Name)
	if err := WriteFileAtomic(path, b.Data, 0644); err != nil {
		return "", err
	}
	logger.Infof("Exported %s (%s, %d bytes)", path, b.MIMEType, len(b.Data))
	return path, nil
}

// WriteFileAtomic writes data to a temporary file beside path and renames
// it into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("writing %s: %w", path, ErrNotRegular)
		}
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
