package render

import (
	"regexp"
	"strings"

	"github.com/dgallion1/formgest/internal/layout"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// orderedMarker matches a line that would open an ordered list.
var orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])(\s|$)`)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// escapeLine is escapeMarkdown for text that starts a line, where a list
// marker, thematic break, setext underline or code fence would otherwise
// be parsed.
func escapeLine(s string) string {
	s = escapeMarkdown(s)
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+', '=', '~':
		return `\` + s
	}
	return orderedMarker.ReplaceAllString(s, `$1\$2$3`)
}

// Markdown exports doc as GitHub-flavored Markdown. Emphasized headers
// become level-3 headings, section titles bold paragraphs, fields
// "**Label**: Value" lines and tables pipe tables whose first row is the
// header row.
func Markdown(doc layout.Document) string {
	var blocks []string
	var fields []string
	flush := func() {
		if len(fields) > 0 {
			// Hard line breaks keep consecutive fields in one block.
			blocks = append(blocks, strings.Join(fields, "  \n"))
			fields = nil
		}
	}

	for _, el := range doc.Elements {
		switch e := el.(type) {
		case layout.Field:
			fields = append(fields, "**"+escapeMarkdown(e.Label)+"**: "+escapeMarkdown(e.Value))
			continue
		case layout.HeaderText:
			flush()
			if e.Emphasized {
				blocks = append(blocks, "### "+escapeMarkdown(e.Content))
			} else {
				blocks = append(blocks, escapeLine(e.Content))
			}
		case layout.SectionTitle:
			flush()
			blocks = append(blocks, "**"+escapeMarkdown(e.Content)+"**")
		case layout.PlainText:
			flush()
			blocks = append(blocks, escapeLine(e.Content))
		case layout.Table:
			flush()
			if t := markdownTable(e); t != "" {
				blocks = append(blocks, t)
			}
		}
	}
	flush()

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func markdownTable(t layout.Table) string {
	cols := t.Columns()
	if cols == 0 || len(t.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	writeRow := func(r int) {
		b.WriteString("|")
		for c := 0; c < cols; c++ {
			b.WriteString(" ")
			b.WriteString(escapeMarkdown(t.Cell(r, c)))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(0)
	b.WriteString("|")
	for c := 0; c < cols; c++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for r := 1; r < len(t.Rows); r++ {
		writeRow(r)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
