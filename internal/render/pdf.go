package render

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/dgallion1/formgest/internal/layout"
)

const pdfMargin = 72 // 1in, in points

// Core PDF fonts only cover cp1252, so the checkbox glyphs fall back to
// their bracket forms.
var pdfGlyphs = strings.NewReplacer("□", "[ ]", "▣", "[X]")

// PDF renders doc as a printable A4 page set and writes it to w.
//
// Only the core PDF fonts are available. A font family other than
// Courier, Times or Symbol is drawn in Helvetica.
func PDF(w io.Writer, doc layout.Document, style Style) error {
	f := NewPDF(doc, style)
	if err := f.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// NewPDF lays doc out with the same grouping as NewDOCX. Errors are
// carried on the returned Fpdf until Output.
func NewPDF(doc layout.Document, style Style) *fpdf.Fpdf {
	f := fpdf.New("P", "pt", "A4", "")
	f.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	f.SetAutoPageBreak(true, pdfMargin)
	f.SetCreator("formgest", false)
	f.AddPage()

	r := &pdfRenderer{
		f:     f,
		style: style,
		font:  pdfFont(style.font()),
		size:  style.FontSize,
		tr:    f.UnicodeTranslatorFromDescriptor(""),
	}
	if r.size <= 0 {
		r.size = DefaultStyle().FontSize
	}

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
			r.row([]float64{twipsToPt(pageWidth)}, []pdfCell{{text: e.Content, align: "L"}}, false)
		case layout.SectionTitle, layout.Field:
			body = append(body, e)
		}
	}
	flush()
	return f
}

func pdfFont(family string) string {
	switch strings.ToLower(family) {
	case "courier", "courier new":
		return "Courier"
	case "times", "times new roman":
		return "Times"
	case "symbol":
		return "Symbol"
	default:
		return "Helvetica"
	}
}

func twipsToPt(tw int64) float64 { return float64(tw) / 20 }

type pdfCell struct {
	text  string
	style string // fpdf style letters: B, U
	size  float64
	align string
}

type pdfRenderer struct {
	f     *fpdf.Fpdf
	style Style
	font  string
	size  float64
	tr    func(string) string
}

func (r *pdfRenderer) lineHeight(size float64) float64 { return size * 1.4 }

func (r *pdfRenderer) header(h layout.HeaderText) {
	c := pdfCell{text: h.Content, align: "C"}
	if h.Emphasized {
		c.style = "B"
		c.size = r.size + 1
	}
	r.row([]float64{twipsToPt(pageWidth)}, []pdfCell{c}, false)
}

func (r *pdfRenderer) bodyTable(els []layout.Element) {
	two := []float64{twipsToPt(labelWidth), twipsToPt(valueWidth)}
	one := []float64{twipsToPt(pageWidth)}
	for _, el := range els {
		switch e := el.(type) {
		case layout.Field:
			r.row(two, []pdfCell{
				{text: e.Label, style: "B", align: "L"},
				{text: ": " + e.Value, align: "L"},
			}, false)
		case layout.SectionTitle:
			c := pdfCell{text: e.Content, style: "B", align: "L"}
			if r.style.UnderlineSectionTitles {
				c.style = "BU"
			}
			r.row(one, []pdfCell{c}, false)
		case layout.PlainText:
			r.row(one, []pdfCell{{text: e.Content, align: "L"}}, false)
		}
	}
}

// grid draws a bordered table with equal column widths and a blank line
// after it.
func (r *pdfRenderer) grid(t layout.Table) {
	cols := t.Columns()
	if cols == 0 || len(t.Rows) == 0 {
		return
	}
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = twipsToPt(pageWidth) / float64(cols)
	}
	for i := range t.Rows {
		cells := make([]pdfCell, cols)
		for j := range cells {
			cells[j] = pdfCell{text: t.Cell(i, j), align: "L"}
		}
		r.row(widths, cells, true)
	}
	r.f.Ln(r.lineHeight(r.size))
}

// row draws cells side by side, wrapping each to its width. The row is as
// tall as its tallest cell and moves to a new page when it would not fit.
func (r *pdfRenderer) row(widths []float64, cells []pdfCell, border bool) {
	f := r.f
	texts := make([]string, len(cells))
	height := 0.0
	for i, c := range cells {
		size := r.sizeOf(c)
		f.SetFont(r.font, c.style, size)
		texts[i] = r.tr(pdfGlyphs.Replace(c.text))
		lines := 1
		if texts[i] != "" {
			lines = len(f.SplitText(texts[i], widths[i]))
		}
		if h := float64(lines) * r.lineHeight(size); h > height {
			height = h
		}
	}

	_, pageH := f.GetPageSize()
	_, _, _, bottom := f.GetMargins()
	if f.GetY()+height > pageH-bottom {
		f.AddPage()
	}

	x0, y0 := f.GetX(), f.GetY()
	x := x0
	for i, c := range cells {
		size := r.sizeOf(c)
		f.SetFont(r.font, c.style, size)
		f.SetXY(x, y0)
		f.MultiCell(widths[i], r.lineHeight(size), texts[i], "", c.align, false)
		if border {
			f.Rect(x, y0, widths[i], height, "D")
		}
		x += widths[i]
	}
	f.SetXY(x0, y0+height)
}

func (r *pdfRenderer) sizeOf(c pdfCell) float64 {
	if c.size > 0 {
		return c.size
	}
	return r.size
}
