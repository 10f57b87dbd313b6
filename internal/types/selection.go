package types

// Selection is a half-open range [Start, End) of rune offsets into a document.
// Start == End is a caret.
type Selection struct {
	Start int
	End   int
}

// Caret returns an empty selection at offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// Empty reports whether the selection is a caret.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Len returns the number of runes covered.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Normalize returns the selection with Start <= End.
func (s Selection) Normalize() Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Clamp normalizes the selection and confines both ends to [0, length].
func (s Selection) Clamp(length int) Selection {
	s = s.Normalize()
	s.Start = clampInt(s.Start, 0, length)
	s.End = clampInt(s.End, 0, length)
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
