// Package stats computes document statistics for the status bar.
package stats

import (
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/rivo/uniseg"
)

// Stats describes a document.
type Stats struct {
	Characters int    // user-perceived characters (grapheme clusters)
	Letters    int    // Unicode letters
	Words      int    // whitespace-separated runs
	Lines      int    // 0 for an empty document
	Bytes      int    // UTF-8 size
	Size       string // Bytes in human form, e.g. "1.2 KiB"
}

// Compute measures text.
func Compute(text string) Stats {
	s := Stats{
		Characters: uniseg.GraphemeClusterCount(text),
		Words:      len(strings.Fields(text)),
		Bytes:      len(text),
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			s.Letters++
		}
	}
	if text != "" {
		s.Lines = strings.Count(text, "\n") + 1
	}
	s.Size = humanize.IBytes(uint64(s.Bytes))
	return s
}
