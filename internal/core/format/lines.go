package format

import (
	"strings"

	"github.com/bethropolis/scribe/internal/types"
)

// prefixFunc returns the prefix for the i-th line of the block and how many
// leading runes of the existing line it replaces.
type prefixFunc func(i int, line []rune) (prefix string, replace int)

func fixedPrefix(p string) prefixFunc {
	return func(int, []rune) (string, int) { return p, 0 }
}

// headingMarkerLen returns the length of an existing "#{1,6} " marker.
func headingMarkerLen(line []rune) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n + 1
}

// lineBounds expands sel to the complete lines it overlaps. A non-empty
// selection that ends right after a newline does not include the next line.
func lineBounds(rs []rune, sel types.Selection) (start, end int) {
	last := sel.End
	if !sel.Empty() && rs[last-1] == '\n' {
		last--
	}
	start = sel.Start
	for start > 0 && rs[start-1] != '\n' {
		start--
	}
	end = last
	if end < start {
		end = start
	}
	for end < len(rs) && rs[end] != '\n' {
		end++
	}
	return start, end
}

// prefixLines applies pf to every line overlapping sel. Selection endpoints
// keep their place in the text they pointed at.
func prefixLines(rs []rune, sel types.Selection, pf prefixFunc) Result {
	blockStart, blockEnd := lineBounds(rs, sel)

	var (
		b         strings.Builder
		lineStart = blockStart // offset of the current line in rs
		newStart  = blockStart // offset of the current line in the result
		mapped    = [2]int{sel.Start, sel.End}
		done      = [2]bool{}
	)
	points := [2]int{sel.Start, sel.End}

	lines := strings.Split(string(rs[blockStart:blockEnd]), "\n")
	for i, text := range lines {
		line := []rune(text)
		prefix, replace := pf(i, line)
		if replace > len(line) {
			replace = len(line)
		}
		lineEnd := lineStart + len(line)
		for k, p := range points {
			if !done[k] && p >= lineStart && p <= lineEnd {
				col := p - lineStart - replace
				if col < 0 {
					col = 0
				}
				mapped[k] = newStart + runeLen(prefix) + col
				done[k] = true
			}
		}

		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefix)
		b.WriteString(string(line[replace:]))

		newStart += runeLen(prefix) + len(line) - replace + 1
		lineStart = lineEnd + 1
	}

	block := b.String()
	out := splice(rs, blockStart, blockEnd, block)
	delta := runeLen(block) - (blockEnd - blockStart)
	for k, p := range points {
		if !done[k] && p > blockEnd {
			mapped[k] = p + delta
		}
	}
	return Result{
		Text:      string(out),
		Selection: types.Selection{Start: mapped[0], End: mapped[1]}.Clamp(len(out)),
	}
}
