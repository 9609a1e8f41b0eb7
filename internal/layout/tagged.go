package layout

import "strings"

// taggedBuilder reconstructs a form from [HEADER]/[BODY] tagged output.
type taggedBuilder struct {
	opts Options
}

func (b *taggedBuilder) Build(raw string) []Element {
	var elements []Element
	section := SectionHeader
	emphasis := newKeywordMatcher(b.opts.Keywords)

	for _, line := range prepare(raw, b.opts) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, HeaderMarker) {
			section = SectionHeader
			continue
		}
		if strings.Contains(line, BodyMarker) {
			section = SectionBody
			continue
		}

		if section == SectionHeader {
			elements = append(elements, HeaderText{
				Content:    line,
				Emphasized: emphasis.match(line),
			})
			continue
		}
		elements = append(elements, b.bodyElement(line))
	}
	return elements
}

// bodyElement classifies one non-empty body line.
func (b *taggedBuilder) bodyElement(line string) Element {
	label, rest, found := strings.Cut(line, ":")
	if !found {
		// A bare all-caps line is a label with an empty value.
		if IsUpper(line) {
			return SectionTitle{Content: line}
		}
		return PlainText{Content: line}
	}

	label = strings.TrimSpace(label)
	value := CleanFiller(rest)
	if b.opts.NormalizeCheckboxes {
		value = NormalizeCheckboxes(value, b.opts.Checkbox)
	}

	if value == "" && IsUpper(label) {
		return SectionTitle{Content: label}
	}
	if value == "" {
		value = EmptyValue
	}
	return Field{Label: label, Value: value}
}
