package layout

// Record is a flat, tagged projection of an Element for JSON and YAML.
type Record struct {
	Type       Kind       `json:"type" yaml:"type"`
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
	Emphasized bool       `json:"emphasized,omitempty" yaml:"emphasized,omitempty"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Value      string     `json:"value,omitempty" yaml:"value,omitempty"`
	Columns    int        `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows       [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Records projects elements in order.
func Records(elements []Element) []Record {
	out := make([]Record, 0, len(elements))
	for _, e := range elements {
		out = append(out, ToRecord(e))
	}
	return out
}

// ToRecord projects a single element.
func ToRecord(e Element) Record {
	r := Record{Type: e.Kind()}
	switch v := e.(type) {
	case HeaderText:
		r.Content = v.Content
		r.Emphasized = v.Emphasized
	case SectionTitle:
		r.Content = v.Content
	case Field:
		r.Label = v.Label
		r.Value = v.Value
	case PlainText:
		r.Content = v.Content
	case Table:
		r.Columns = v.Columns()
		r.Rows = v.Rows
	}
	return r
}
