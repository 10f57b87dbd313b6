package history

// Snapshot is the full document text plus the selection at capture time.
// Offsets are rune offsets into Text.
type Snapshot struct {
	Text           string
	SelectionStart int
	SelectionEnd   int
}

// RuneLen returns the length of the snapshot text in runes.
func (s Snapshot) RuneLen() int {
	return len([]rune(s.Text))
}
