// internal/types/position.go
package types

// Position represents a cursor or text position within the document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

