// Package preview lays rendered markdown out as styled terminal lines.
package preview

import (
	"github.com/bethropolis/scribe/internal/core/direction"
	"github.com/mattn/go-runewidth"
)

// Span is a run of text drawn with one theme style.
type Span struct {
	Text  string
	Style string // theme style name, e.g. "markup.bold"
}

// Line is one terminal row of the preview.
type Line struct {
	Spans []Span
	Dir   direction.Direction
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// Text returns the line without styling.
func (l Line) Text() string {
	n := 0
	for _, s := range l.Spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range l.Spans {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Document is a laid out preview.
type Document struct {
	Lines []Line
}

// Texts returns every line without styling.
func (d *Document) Texts() []string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Text()
	}
	return out
}
