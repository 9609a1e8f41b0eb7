package layout

import (
	"fmt"
	"strings"
)

// Mode selects the reconstruction strategy.
type Mode string

const (
	// ModeTagged expects [HEADER] and [BODY] markers and Label: Value lines.
	ModeTagged Mode = "tagged"
	// ModeMarkdown expects free text mixed with pipe-delimited tables.
	ModeMarkdown Mode = "markdown"
)

// ParseMode resolves a mode name. "a" and "b" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tagged", "a":
		return ModeTagged, nil
	case "markdown", "md", "b":
		return ModeMarkdown, nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}

// ParseSection is the tagged builder's position in the form. Each marker
// line switches to its section, so a header marker after the body starts
// a new header block.
type ParseSection int

const (
	SectionHeader ParseSection = iota
	SectionBody
)

func (s ParseSection) String() string {
	if s == SectionBody {
		return "BODY"
	}
	return "HEADER"
}

// Section markers emitted by the OCR provider under the tagged prompt.
const (
	HeaderMarker = "[HEADER]"
	BodyMarker   = "[BODY]"
)

// CheckboxSymbols are the glyphs substituted for "[ ]" and "[X]".
type CheckboxSymbols struct {
	Unchecked string `yaml:"unchecked" json:"unchecked"`
	Checked   string `yaml:"checked" json:"checked"`
}

// Options configures classification. The zero value disables every
// optional behavior; use DefaultOptions for the usual settings.
type Options struct {
	// Keywords mark a header line as emphasized when its upper-cased text
	// contains any of them.
	Keywords []string `yaml:"keywords" json:"keywords"`

	// NoiseKeywords discard a non-table line in markdown mode when the line
	// contains any of them. Matching is case-sensitive.
	NoiseKeywords []string `yaml:"noise_keywords" json:"noise_keywords"`

	NormalizeCheckboxes bool            `yaml:"normalize_checkboxes" json:"normalize_checkboxes"`
	Checkbox            CheckboxSymbols `yaml:"checkbox" json:"checkbox"`

	// NormalizeUnicode applies NFC to the raw text before splitting lines.
	NormalizeUnicode bool `yaml:"normalize_unicode" json:"normalize_unicode"`
}

// DefaultOptions returns the settings used for Indonesian public-service
// complaint forms.
func DefaultOptions() Options {
	return Options{
		Keywords:      []string{"OMBUDSMAN", "REPUBLIK", "FORMULIR"},
		NoiseKeywords: []string{"AutoSave", "Mailings", "Layout References", "Review View Help"},

		NormalizeCheckboxes: true,
		Checkbox: CheckboxSymbols{
			Unchecked: "□",
			Checked:   "▣",
		},
		NormalizeUnicode: true,
	}
}
