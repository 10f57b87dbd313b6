// Package format applies markdown formatting directives to a document and
// selection, returning the new text and the selection that should follow.
// All offsets are rune offsets.
package format

import (
	"strconv"
	"strings"

	"github.com/bethropolis/scribe/internal/types"
)

// Options holds the configurable parts of the templates.
type Options struct {
	HeadingLevel int // 1..6
	LinkLabel    string
	LinkURL      string
	ImageAlt     string
	ImageURL     string
	TableHeaders []string
	TableRows    int
}

// DefaultOptions returns the built-in templates.
func DefaultOptions() Options {
	return Options{
		HeadingLevel: 2,
		LinkLabel:    "link text",
		LinkURL:      "https://",
		ImageAlt:     "image description",
		ImageURL:     "image-url",
		TableHeaders: []string{"Header 1", "Header 2"},
		TableRows:    2,
	}
}

// Result is the outcome of applying a directive.
type Result struct {
	Text      string
	Selection types.Selection
}

// Formatter applies directives with a fixed set of options.
type Formatter struct {
	opts Options
}

// New creates a Formatter, filling unset options from DefaultOptions.
func New(opts Options) *Formatter {
	def := DefaultOptions()
	if opts.HeadingLevel < 1 || opts.HeadingLevel > 6 {
		opts.HeadingLevel = def.HeadingLevel
	}
	if opts.LinkLabel == "" {
		opts.LinkLabel = def.LinkLabel
	}
	if opts.LinkURL == "" {
		opts.LinkURL = def.LinkURL
	}
	if opts.ImageAlt == "" {
		opts.ImageAlt = def.ImageAlt
	}
	if opts.ImageURL == "" {
		opts.ImageURL = def.ImageURL
	}
	if len(opts.TableHeaders) == 0 {
		opts.TableHeaders = def.TableHeaders
	}
	if opts.TableRows <= 0 {
		opts.TableRows = def.TableRows
	}
	return &Formatter{opts: opts}
}

// Options returns the effective options.
func (f *Formatter) Options() Options {
	return f.opts
}

// Apply runs directive d over text with selection sel. It never panics; an
// out-of-range selection is clamped first and the returned selection always
// lies within the new text.
func (f *Formatter) Apply(text string, sel types.Selection, d Directive) Result {
	rs := []rune(text)
	sel = sel.Clamp(len(rs))

	switch d {
	case Emphasis:
		return wrap(rs, sel, "*", "*")
	case Strong:
		return wrap(rs, sel, "**", "**")
	case Strikethrough:
		return wrap(rs, sel, "~~", "~~")
	case Heading:
		marker := strings.Repeat("#", f.opts.HeadingLevel) + " "
		return prefixLines(rs, sel, func(_ int, line []rune) (string, int) {
			return marker, headingMarkerLen(line)
		})
	case Quote:
		return prefixLines(rs, sel, fixedPrefix("> "))
	case UnorderedList:
		return prefixLines(rs, sel, fixedPrefix("- "))
	case OrderedList:
		return prefixLines(rs, sel, func(i int, _ []rune) (string, int) {
			return strconv.Itoa(i+1) + ". ", 0
		})
	case Checklist:
		return prefixLines(rs, sel, fixedPrefix("- [ ] "))
	case Code:
		if sel.Empty() {
			return fencedBlock(rs, sel.Start)
		}
		if containsNewline(rs[sel.Start:sel.End]) {
			return fencedSelection(rs, sel)
		}
		return wrap(rs, sel, "`", "`")
	case Link:
		return f.reference(rs, sel, "[", f.opts.LinkLabel, f.opts.LinkURL)
	case Image:
		return f.reference(rs, sel, "![", f.opts.ImageAlt, f.opts.ImageURL)
	case Table:
		return insertBlock(rs, sel.End, f.tableTemplate())
	}
	return Result{Text: text, Selection: sel}
}

func splice(rs []rune, start, end int, insert string) []rune {
	ins := []rune(insert)
	out := make([]rune, 0, len(rs)-(end-start)+len(ins))
	out = append(out, rs[:start]...)
	out = append(out, ins...)
	out = append(out, rs[end:]...)
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}

func containsNewline(rs []rune) bool {
	for _, r := range rs {
		if r == '\n' {
			return true
		}
	}
	return false
}

// wrap surrounds the selection with prefix and suffix. The selection keeps
// covering the original text; a caret lands between the markers.
func wrap(rs []rune, sel types.Selection, prefix, suffix string) Result {
	body := string(rs[sel.Start:sel.End])
	out := splice(rs, sel.Start, sel.End, prefix+body+suffix)
	p := runeLen(prefix)
	return Result{
		Text:      string(out),
		Selection: types.Selection{Start: sel.Start + p, End: sel.End + p},
	}
}

// fencedSelection wraps a multi-line selection in a fenced block, breaking
// the surrounding lines so both fences start a line of their own.
func fencedSelection(rs []rune, sel types.Selection) Result {
	opening, closing := "```\n", "\n```"
	if sel.Start > 0 && rs[sel.Start-1] != '\n' {
		opening = "\n" + opening
	}
	if sel.End < len(rs) && rs[sel.End] != '\n' {
		closing += "\n"
	}
	return wrap(rs, sel, opening, closing)
}

// reference builds a link or image. A selection becomes the label; the URL
// placeholder is selected afterwards so typing replaces it.
func (f *Formatter) reference(rs []rune, sel types.Selection, open, label, url string) Result {
	if !sel.Empty() {
		label = string(rs[sel.Start:sel.End])
	}
	out := splice(rs, sel.Start, sel.End, open+label+"]("+url+")")
	urlStart := sel.Start + runeLen(open) + runeLen(label) + 2
	return Result{
		Text:      string(out),
		Selection: types.Selection{Start: urlStart, End: urlStart + runeLen(url)},
	}
}

// fencedBlock inserts an empty fenced code block at pos and puts the caret
// on its body line. The fence is kept on lines of its own.
func fencedBlock(rs []rune, pos int) Result {
	insert := "```\n\n```"
	caret := pos + 4
	if pos > 0 && rs[pos-1] != '\n' {
		insert = "\n" + insert
		caret++
	}
	if pos == len(rs) || rs[pos] != '\n' {
		insert += "\n"
	}
	out := splice(rs, pos, pos, insert)
	return Result{Text: string(out), Selection: types.Caret(caret)}
}

// insertBlock inserts a multi-line template at pos on lines of its own, with
// the caret at the end of the template.
func insertBlock(rs []rune, pos int, tmpl string) Result {
	lead := ""
	if pos > 0 && rs[pos-1] != '\n' {
		lead = "\n"
	}
	trail := ""
	if pos == len(rs) || rs[pos] != '\n' {
		trail = "\n"
	}
	out := splice(rs, pos, pos, lead+tmpl+trail)
	return Result{Text: string(out), Selection: types.Caret(pos + runeLen(lead) + runeLen(tmpl))}
}

func (f *Formatter) tableTemplate() string {
	cols := len(f.opts.TableHeaders)
	var b strings.Builder
	b.WriteString("| " + strings.Join(f.opts.TableHeaders, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", cols))
	for r := 1; r <= f.opts.TableRows; r++ {
		b.WriteString("\n|")
		for c := 1; c <= cols; c++ {
			b.WriteString(" Row " + strconv.Itoa(r) + " Cell " + strconv.Itoa(c) + " |")
		}
	}
	return b.String()
}
