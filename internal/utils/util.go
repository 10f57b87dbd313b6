// Package utils holds byte/rune helpers for the tree-sitter highlighter.
package utils

import (
	"unicode/utf8"
)

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a byte slice.
// An offset inside a multi-byte rune counts as the start of that rune.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// SplitLines splits src on '\n' without copying.
func SplitLines(src []byte) [][]byte {
	lines := make([][]byte, 0, 16)
	start := 0
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, src[start:i])
			start = i + 1
		}
	}
	return append(lines, src[start:])
}
