package preview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// tokenStyle maps a chroma token type to a theme style name.
func tokenStyle(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Comment):
		return "code.comment"
	case t.InCategory(chroma.Keyword):
		return "code.keyword"
	case t.InSubCategory(chroma.LiteralString):
		return "code.string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "code.number"
	case t == chroma.NameFunction || t == chroma.NameBuiltin:
		return "code.function"
	case t.InCategory(chroma.Operator):
		return "code.operator"
	case t.InCategory(chroma.Generic):
		return "code.generic"
	}
	return "code"
}

func lexerFor(lang, code string) chroma.Lexer {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// highlightCode tokenises code and returns one span list per source line.
// On a lexer error the code is returned unstyled.
func highlightCode(lang, code string) [][]Span {
	code = strings.TrimSuffix(code, "\n")
	plain := func() [][]Span {
		var out [][]Span
		for _, l := range strings.Split(code, "\n") {
			out = append(out, appendSpan(nil, expandTabs(l), "code"))
		}
		return out
	}

	it, err := lexerFor(lang, code).Tokenise(nil, code)
	if err != nil {
		return plain()
	}

	lines := [][]Span{nil}
	for tok := it(); tok != chroma.EOF; tok = it() {
		style := tokenStyle(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			last := len(lines) - 1
			lines[last] = appendSpan(lines[last], expandTabs(part), style)
		}
	}
	// Lexers usually end with a newline token.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 && !strings.HasSuffix(code, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
