package markdown

import (
	"bytes"
	"fmt"
	"html/template"
)

// DocumentOptions describes the standalone HTML export.
type DocumentOptions struct {
	Title string
	Lang  string // e.g. "fa", "en"
	Dir   string // "rtl" or "ltr"
	Font  string // CSS font family
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
    body { font-family: '{{.Font}}', sans-serif; direction: {{.Dir}}; line-height: 1.6; padding: 20px; max-width: 800px; margin: 0 auto; }
    blockquote { border-{{.Start}}: 4px solid #dfe2e5; padding-{{.Start}}: 1em; margin-{{.Start}}: 1em; color: #6a737d; }
    code { font-family: monospace; background-color: #f1f1f1; padding: 0.2em 0.4em; border-radius: 3px; direction: ltr; }
    pre { background-color: #f6f8fa; border: 1px solid #dfe2e5; border-radius: 3px; padding: 1em; overflow-x: auto; direction: ltr; text-align: left; }
    pre code { background-color: transparent; padding: 0; border: none; display: block; }
    table { border-collapse: collapse; margin-bottom: 1em; }
    th, td { border: 1px solid #dfe2e5; padding: 0.6em 1em; text-align: {{.Start}}; }
    th { background-color: #f6f8fa; font-weight: bold; }
    img { max-width: 100%; height: auto; }
    ul, ol { padding-{{.Start}}: 2em; }
    li input[type="checkbox"] { margin-inline-end: 0.5em; vertical-align: middle; }
    .render-error { color: #b00020; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type documentData struct {
	DocumentOptions
	Start template.CSS
	Body  template.HTML
}

// HTMLDocument wraps an already rendered fragment in a standalone page.
func HTMLDocument(body string, opts DocumentOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Document"
	}
	if opts.Dir != "ltr" {
		opts.Dir = "rtl"
	}
	if opts.Lang == "" {
		opts.Lang = "en"
		if opts.Dir == "rtl" {
			opts.Lang = "fa"
		}
	}
	if opts.Font == "" {
		opts.Font = "Vazirmatn"
	}
	start := template.CSS("right")
	if opts.Dir == "ltr" {
		start = "left"
	}

	var buf bytes.Buffer
	data := documentData{DocumentOptions: opts, Start: start, Body: template.HTML(body)}
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("build html document: %w", err)
	}
	return buf.Bytes(), nil
}
