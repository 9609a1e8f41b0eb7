package render

import (
	"fmt"
	"io"

	"github.com/dgallion1/formgest/internal/layout"
	docx "github.com/fumiama/go-docx"
)

// Widths in twips (1440 per inch).
const (
	labelWidth = 3168 // 2.2in
	valueWidth = 5472 // 3.8in
	pageWidth  = labelWidth + valueWidth
)

// DOCX renders doc as a Word document and writes it to w.
func DOCX(w io.Writer, doc layout.Document, style Style) error {
	f := NewDOCX(doc, style)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing docx: %w", err)
	}
	return nil
}

// NewDOCX builds the in-memory document without serializing it.
//
// Consecutive SectionTitle, Field and (in tagged mode) PlainText elements
// share one two-column table. A HeaderText or Table closes the current
// body table.
func NewDOCX(doc layout.Document, style Style) *docx.Docx {
	r := &docxRenderer{f: docx.New().WithDefaultTheme(), style: style}

	var body []layout.Element
	flush := func() {
		if len(body) > 0 {
			r.bodyTable(body)
			body = nil
		}
	}

	for _, el := range doc.Elements {
		switch e := el.(type) {
		case layout.HeaderText:
			flush()
			r.header(e)
		case layout.Table:
			flush()
			r.grid(e)
		case layout.PlainText:
			if doc.Mode == layout.ModeTagged {
				body = append(body, e)
				continue
			}
			flush()
			r.text(r.f.AddParagraph(), e.Content)
		case layout.SectionTitle, layout.Field:
			body = append(body, e)
		}
	}
	flush()
	return r.f
}

type docxRenderer struct {
	f     *docx.Docx
	style Style
}

// text adds a run in the base style.
func (r *docxRenderer) text(p *docx.Paragraph, s string) *docx.Run {
	font := r.style.font()
	return p.AddText(s).Font(font, font, font, "").Size(r.style.halfPoints(0))
}

func (r *docxRenderer) header(h layout.HeaderText) {
	p := r.f.AddParagraph().Justification("center")
	run := r.text(p, h.Content)
	if h.Emphasized {
		run.Bold().Size(r.style.halfPoints(1))
	}
}

func (r *docxRenderer) bodyTable(els []layout.Element) {
	tbl := r.f.AddTableTwips(make([]int64, len(els)), []int64{labelWidth, valueWidth}, pageWidth, nil)
	borderless(tbl)
	for i, el := range els {
		row := tbl.TableRows[i]
		switch e := el.(type) {
		case layout.Field:
			r.text(row.TableCells[0].AddParagraph(), e.Label).Bold()
			r.text(row.TableCells[1].AddParagraph(), ": "+e.Value)
		case layout.SectionTitle:
			run := r.text(mergeRow(row).AddParagraph(), e.Content).Bold()
			if r.style.UnderlineSectionTitles {
				run.Underline("single")
			}
		case layout.PlainText:
			r.text(mergeRow(row).AddParagraph(), e.Content)
		}
	}
}

// borderless clears the single black borders go-docx gives every new table.
func borderless(tbl *docx.Table) {
	none := func() *docx.WTableBorder { return &docx.WTableBorder{Val: "none"} }
	tbl.TableProperties.TableBorders = &docx.WTableBorders{
		Top: none(), Left: none(), Bottom: none(), Right: none(), InsideH: none(), InsideV: none(),
	}
}

// mergeRow collapses a two-cell row into one cell spanning both columns.
func mergeRow(row *docx.WTableRow) *docx.WTableCell {
	cell := row.TableCells[0]
	cell.TableCellProperties.GridSpan = &docx.WGridSpan{Val: 2}
	cell.TableCellProperties.TableCellWidth = &docx.WTableCellWidth{W: pageWidth, Type: "dxa"}
	row.TableCells = row.TableCells[:1]
	return cell
}

// grid renders a Mode B table with equal column widths, followed by an
// empty spacer paragraph. Rows shorter than the widest get empty cells.
func (r *docxRenderer) grid(t layout.Table) {
	cols := t.Columns()
	if cols == 0 || len(t.Rows) == 0 {
		return
	}
	widths := make([]int64, cols)
	for i := range widths {
		widths[i] = pageWidth / int64(cols)
	}
	tbl := r.f.AddTableTwips(make([]int64, len(t.Rows)), widths, pageWidth, nil)
	for i := range t.Rows {
		for j := 0; j < cols; j++ {
			p := tbl.TableRows[i].TableCells[j].AddParagraph()
			if s := t.Cell(i, j); s != "" {
				r.text(p, s)
			}
		}
	}
	r.f.AddParagraph()
}
