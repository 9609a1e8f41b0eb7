package render

import (
	"math"
	"strconv"
)

// Style is the default text style applied to every run in a rendered
// document.
type Style struct {
	FontFamily             string
	FontSize               float64 // points
	UnderlineSectionTitles bool
}

// DefaultStyle returns Arial 10pt with underlined section titles.
func DefaultStyle() Style {
	return Style{
		FontFamily:             "Arial",
		FontSize:               10,
		UnderlineSectionTitles: true,
	}
}

// halfPoints converts the base size plus delta points into the
// half-point string DOCX run properties expect.
func (s Style) halfPoints(delta float64) string {
	size := s.FontSize
	if size <= 0 {
		size = DefaultStyle().FontSize
	}
	return strconv.Itoa(int(math.Round((size + delta) * 2)))
}

func (s Style) font() string {
	if s.FontFamily == "" {
		return DefaultStyle().FontFamily
	}
	return s.FontFamily
}
