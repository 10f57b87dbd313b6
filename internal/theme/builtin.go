package theme

import "github.com/gdamore/tcell/v2"

// Names of the built-in themes.
const (
	LightName = "light"
	DarkName  = "dark"
)

type palette struct {
	bg, fg, muted, panel     tcell.Color
	accent, heading, link    tcell.Color
	code, codeBg, quote      tcell.Color
	keyword, str, num, fn    tcell.Color
	errorFg, modified, ok    tcell.Color
	selection, selectionText tcell.Color
}

func build(name string, dark bool, p palette) Theme {
	base := tcell.StyleDefault.Background(p.bg).Foreground(p.fg)
	panel := tcell.StyleDefault.Background(p.panel).Foreground(p.fg)
	code := base.Foreground(p.code).Background(p.codeBg)

	return Theme{
		Name:   name,
		IsDark: dark,
		Styles: map[string]tcell.Style{
			// UI
			"Default":           base,
			"Selection":         base.Background(p.selection).Foreground(p.selectionText),
			"LineNumber":        base.Foreground(p.muted),
			"LineNumberActive":  base.Foreground(p.accent).Bold(true),
			"PaneBorder":        base.Foreground(p.muted),
			"PaneTitle":         panel.Bold(true),
			"StatusBar":         panel,
			"StatusBarModified": panel.Foreground(p.modified).Bold(true),
			"StatusBarMessage":  panel.Foreground(p.ok).Bold(true),
			"StatusBarError":    panel.Foreground(p.errorFg).Bold(true),
			"Prompt":            panel.Foreground(p.accent).Bold(true),

			// Markdown (editor and preview)
			"markup":                base,
			"markup.heading":        base.Foreground(p.heading).Bold(true),
			"markup.heading.marker": base.Foreground(p.muted).Bold(true),
			"markup.bold":           base.Bold(true),
			"markup.italic":         base.Italic(true),
			"markup.strikethrough":  base.StrikeThrough(true).Foreground(p.muted),
			"markup.code":           code,
			"markup.codeblock":      code,
			"markup.code.info":      code.Foreground(p.muted).Italic(true),
			"markup.delimiter":      base.Foreground(p.muted),
			"markup.quote":          base.Foreground(p.quote).Italic(true),
			"markup.list":           base.Foreground(p.accent).Bold(true),
			"markup.list.task":      base.Foreground(p.accent),
			"markup.hr":             base.Foreground(p.muted),
			"markup.table":          base,
			"markup.table.header":   base.Bold(true),
			"markup.table.border":   base.Foreground(p.muted),
			"markup.link":           base.Foreground(p.link).Underline(true),
			"markup.link.url":       base.Foreground(p.muted).Underline(true),
			"markup.html":           base.Foreground(p.muted).Italic(true),
			"markup.error":          base.Foreground(p.errorFg).Bold(true),

			// Code block tokens
			"code":          code,
			"code.comment":  code.Foreground(p.muted).Italic(true),
			"code.keyword":  code.Foreground(p.keyword).Bold(true),
			"code.string":   code.Foreground(p.str),
			"code.number":   code.Foreground(p.num),
			"code.function": code.Foreground(p.fn),
			"code.operator": code.Foreground(p.muted),
			"code.generic":  code.Foreground(p.heading),
		},
	}
}

// Light is the default theme.
var Light = build(LightName, false, palette{
	bg:            tcell.NewHexColor(0xffffff),
	fg:            tcell.NewHexColor(0x24292f),
	muted:         tcell.NewHexColor(0x6e7781),
	panel:         tcell.NewHexColor(0xf3f4f6),
	accent:        tcell.NewHexColor(0x0969da),
	heading:       tcell.NewHexColor(0x1f2328),
	link:          tcell.NewHexColor(0x0969da),
	code:          tcell.NewHexColor(0x24292f),
	codeBg:        tcell.NewHexColor(0xf6f8fa),
	quote:         tcell.NewHexColor(0x57606a),
	keyword:       tcell.NewHexColor(0xcf222e),
	str:           tcell.NewHexColor(0x0a3069),
	num:           tcell.NewHexColor(0x0550ae),
	fn:            tcell.NewHexColor(0x8250df),
	errorFg:       tcell.NewHexColor(0xcf222e),
	modified:      tcell.NewHexColor(0x9a6700),
	ok:            tcell.NewHexColor(0x1a7f37),
	selection:     tcell.NewHexColor(0xb6d7ff),
	selectionText: tcell.NewHexColor(0x24292f),
})

// Dark mirrors Light for dark terminals.
var Dark = build(DarkName, true, palette{
	bg:            tcell.NewHexColor(0x22272e),
	fg:            tcell.NewHexColor(0xc5cdd9),
	muted:         tcell.NewHexColor(0x5c6370),
	panel:         tcell.NewHexColor(0x2a2f38),
	accent:        tcell.NewHexColor(0x61afef),
	heading:       tcell.NewHexColor(0xe5c07b),
	link:          tcell.NewHexColor(0x56b6c2),
	code:          tcell.NewHexColor(0xc5cdd9),
	codeBg:        tcell.NewHexColor(0x2d333b),
	quote:         tcell.NewHexColor(0x8b949e),
	keyword:       tcell.NewHexColor(0xc678dd),
	str:           tcell.NewHexColor(0x98c379),
	num:           tcell.NewHexColor(0xd19a66),
	fn:            tcell.NewHexColor(0x61afef),
	errorFg:       tcell.NewHexColor(0xe06c75),
	modified:      tcell.NewHexColor(0xe5c07b),
	ok:            tcell.NewHexColor(0x98c379),
	selection:     tcell.NewHexColor(0x3e4451),
	selectionText: tcell.NewHexColor(0xe6edf3),
})
