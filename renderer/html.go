package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlHeader wraps the converted body so the file opens standalone in a
// browser. Tables carry the only styling the reports need.
const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; }
</style>
</head>
<body>
`

const htmlFooter = "</body>\n</html>\n"

// HTML converts a markdown report into a standalone HTML document. The
// tables extension is required: every report is mostly tables.
func HTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("could not convert report to HTML: %w", err)
	}
	return htmlHeader + body.String() + htmlFooter, nil
}
