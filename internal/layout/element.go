package layout

// Kind identifies the variant of a document element.
type Kind string

const (
	KindHeaderText   Kind = "header_text"
	KindSectionTitle Kind = "section_title"
	KindField        Kind = "field"
	KindPlainText    Kind = "plain_text"
	KindTable        Kind = "table"
)

// Element is one unit of reconstructed output. The concrete types are
// HeaderText, SectionTitle, Field, PlainText and Table.
type Element interface {
	Kind() Kind
}

// HeaderText is a centered header line. Emphasized marks institutional
// or title lines.
type HeaderText struct {
	Content    string
	Emphasized bool
}

// SectionTitle is an all-caps body label with no value.
type SectionTitle struct {
	Content string
}

// Field is a label/value pair. Value is never empty; an empty value after
// cleanup is stored as EmptyValue.
type Field struct {
	Label string
	Value string
}

// PlainText is a body line that has no label/value or table shape.
type PlainText struct {
	Content string
}

// Table is a grid rebuilt from a contiguous run of pipe-delimited lines.
// Rows may be jagged.
type Table struct {
	Rows [][]string
}

// EmptyValue stands in for a field value that cleaned down to nothing.
const EmptyValue = "-"

func (HeaderText) Kind() Kind   { return KindHeaderText }
func (SectionTitle) Kind() Kind { return KindSectionTitle }
func (Field) Kind() Kind        { return KindField }
func (PlainText) Kind() Kind    { return KindPlainText }
func (Table) Kind() Kind        { return KindTable }

// Columns returns the widest row's cell count.
func (t Table) Columns() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Cell returns the text at (row, col), or "" when the row is shorter
// than the table.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// Document pairs an element sequence with the mode that produced it.
// Renderers need the mode to decide how body lines are laid out.
type Document struct {
	Mode     Mode
	Elements []Element
}
