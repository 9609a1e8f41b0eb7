package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "md"
	formatHTML     = "html"
	formatDOCX     = "docx"
	formatPDF      = "pdf"
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case formatJSON, formatYAML, formatHTML, formatDOCX, formatPDF:
		return f, nil
	case "yml":
		return formatYAML, nil
	case formatMarkdown, "markdown":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// output is the structured (json/yaml) shape of a document.
type output struct {
	Mode     layout.Mode     `json:"mode" yaml:"mode"`
	Elements []layout.Record `json:"elements" yaml:"elements"`
}

func writeOutput(w io.Writer, format string, doc layout.Document, style render.Style) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output{Mode: doc.Mode, Elements: layout.Records(doc.Elements)})
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(output{Mode: doc.Mode, Elements: layout.Records(doc.Elements)})
	case formatMarkdown:
		_, err := io.WriteString(w, render.Markdown(doc))
		return err
	case formatHTML:
		page, err := render.HTML(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(page)
		return err
	case formatDOCX:
		return render.DOCX(w, doc, style)
	case formatPDF:
		return render.PDF(w, doc, style)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
