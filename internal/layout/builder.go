package layout

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Builder turns raw OCR text into an ordered element sequence.
// Build never fails: every line is emitted, discarded as a marker or
// noise, or skipped as empty. Builders hold no per-call state and may be
// used from several goroutines at once.
type Builder interface {
	Build(raw string) []Element
}

// New returns the builder for mode.
func New(mode Mode, opts Options) (Builder, error) {
	switch mode {
	case ModeTagged:
		return &taggedBuilder{opts: opts}, nil
	case ModeMarkdown:
		return &markdownBuilder{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown mode: %q", mode)
	}
}

// Build classifies raw with the builder for mode.
func Build(raw string, mode Mode, opts Options) ([]Element, error) {
	b, err := New(mode, opts)
	if err != nil {
		return nil, err
	}
	return b.Build(raw), nil
}

// BuildDocument is Build wrapped into a Document for renderers.
func BuildDocument(raw string, mode Mode, opts Options) (Document, error) {
	elements, err := Build(raw, mode, opts)
	if err != nil {
		return Document{}, err
	}
	return Document{Mode: mode, Elements: elements}, nil
}

func prepare(raw string, opts Options) []string {
	if opts.NormalizeUnicode {
		raw = norm.NFC.String(raw)
	}
	return splitLines(raw)
}

// keywordMatcher upper-cases a line and checks it against a keyword set.
// A cases.Caser keeps internal state, so each Build call gets its own.
type keywordMatcher struct {
	upper    cases.Caser
	keywords []string
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	upper := cases.Upper(language.Und)
	m := &keywordMatcher{upper: upper}
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			m.keywords = append(m.keywords, upper.String(k))
		}
	}
	return m
}

func (m *keywordMatcher) match(line string) bool {
	if len(m.keywords) == 0 {
		return false
	}
	u := m.upper.String(line)
	for _, k := range m.keywords {
		if strings.Contains(u, k) {
			return true
		}
	}
	return false
}
