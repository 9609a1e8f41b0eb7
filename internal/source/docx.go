package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXLoader handles .docx files: paragraphs become lines and tables
// become pipe rows.
type DOCXLoader struct{}

func (l *DOCXLoader) Load(r io.Reader, filename string) (string, error) {
	// go-docx needs a ReaderAt and a size.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			if t := paragraphText(v); t != "" {
				lines = append(lines, t)
			}
		case *docx.Table:
			for _, row := range v.TableRows {
				cells := make([]string, 0, len(row.TableCells))
				for _, cell := range row.TableCells {
					var parts []string
					for _, p := range cell.Paragraphs {
						if t := paragraphText(p); t != "" {
							parts = append(parts, t)
						}
					}
					cells = append(cells, strings.Join(parts, " "))
				}
				lines = append(lines, tableRow(cells))
			}
			lines = append(lines, "")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteString("\t")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
