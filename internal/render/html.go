package render

import (
	"bytes"
	"fmt"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

const (
	previewHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>formgest preview</title>
<style>
body { font-family: Arial, sans-serif; font-size: 10pt; max-width: 6in; margin: 1em auto; }
h3 { text-align: center; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #444; padding: 2px 6px; }
</style>
</head>
<body>
`
	previewTail = "</body>\n</html>\n"
)

// HTML renders doc as a standalone HTML preview page. Raw HTML in element
// text is escaped, never passed through.
func HTML(doc layout.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(previewHead)
	if err := md.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	buf.WriteString(previewTail)
	return buf.Bytes(), nil
}
