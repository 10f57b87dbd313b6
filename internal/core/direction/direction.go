// Package direction guesses whether text reads left-to-right or
// right-to-left from its first strongly directional character.
package direction

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Direction is a paragraph direction.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Parse reads "ltr" or "rtl"; anything else yields fallback.
func Parse(s string, fallback Direction) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr":
		return LTR
	case "rtl":
		return RTL
	}
	return fallback
}

// Detect returns the direction of the first strong character in text, or
// fallback when there is none.
func Detect(text string, fallback Direction) Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LTR
		case bidi.R, bidi.AL:
			return RTL
		}
	}
	return fallback
}
