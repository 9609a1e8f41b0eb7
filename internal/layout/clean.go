package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// fillerDots matches runs of two or more periods left by dotted fill-in lines.
var fillerDots = regexp.MustCompile(`\.{2,}`)

// CleanFiller strips filler-dot runs and surrounding whitespace.
// CleanFiller(CleanFiller(s)) == CleanFiller(s).
func CleanFiller(s string) string {
	return strings.TrimSpace(fillerDots.ReplaceAllString(s, ""))
}

// NormalizeCheckboxes replaces the literal "[ ]" and "[X]" with glyphs.
func NormalizeCheckboxes(s string, symbols CheckboxSymbols) string {
	s = strings.ReplaceAll(s, "[ ]", symbols.Unchecked)
	return strings.ReplaceAll(s, "[X]", symbols.Checked)
}

// IsUpper reports whether s has at least one cased letter and no
// lower-case or title-case letters. Digits, spaces and punctuation are
// ignored, so "NO. 1 IDENTITAS" is upper-case and "123" is not.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// splitLines splits on line feeds; carriage returns are removed later by
// trimming each line.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
