package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirective is returned by ParseDirective for unrecognised names.
var ErrUnknownDirective = errors.New("unknown formatting directive")

// Directive is a markdown formatting operation.
type Directive int

const (
	Emphasis Directive = iota
	Strong
	Strikethrough
	Heading
	Quote
	UnorderedList
	OrderedList
	Checklist
	Code
	Link
	Image
	Table
)

var directiveNames = [...]string{
	Emphasis:      "italic",
	Strong:        "bold",
	Strikethrough: "strikethrough",
	Heading:       "heading",
	Quote:         "quote",
	UnorderedList: "unordered-list",
	OrderedList:   "ordered-list",
	Checklist:     "checklist",
	Code:          "code",
	Link:          "link",
	Image:         "image",
	Table:         "table",
}

var directiveAliases = map[string]Directive{
	"em":         Emphasis,
	"emphasis":   Emphasis,
	"strong":     Strong,
	"strike":     Strikethrough,
	"h":          Heading,
	"blockquote": Quote,
	"ul":         UnorderedList,
	"ol":         OrderedList,
	"task":       Checklist,
	"img":        Image,
}

func (d Directive) String() string {
	if d >= 0 && int(d) < len(directiveNames) {
		return directiveNames[d]
	}
	return fmt.Sprintf("Directive(%d)", int(d))
}

// Directives lists every directive in toolbar order.
func Directives() []Directive {
	out := make([]Directive, len(directiveNames))
	for i := range directiveNames {
		out[i] = Directive(i)
	}
	return out
}

// ParseDirective resolves a toolbar or command name, case-insensitively.
func ParseDirective(name string) (Directive, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "btn-")
	for i, n := range directiveNames {
		if n == key {
			return Directive(i), nil
		}
	}
	if d, ok := directiveAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirective, name)
}
