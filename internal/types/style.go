package types

// StyledRange marks a run of columns on one line with a theme style name.
// Columns are rune indexes; EndCol is exclusive.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string // e.g. "markup.heading", "markup.quote"
}

// LineStyles maps a 0-based line index to its styled ranges.
type LineStyles map[int][]StyledRange
