package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/render"
	"gopkg.in/yaml.v3"
)

// LoadLayoutOptions reads a YAML options file over layout.DefaultOptions.
// Keys absent from the file keep their defaults; unknown keys are an error.
// An empty path returns the defaults.
func LoadLayoutOptions(path string) (layout.Options, error) {
	opts := layout.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading layout options: %w", err)
	}
	return ParseLayoutOptions(data)
}

// ParseLayoutOptions decodes YAML options over layout.DefaultOptions.
func ParseLayoutOptions(data []byte) (layout.Options, error) {
	opts := layout.DefaultOptions()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return layout.DefaultOptions(), fmt.Errorf("parsing layout options: %w", err)
	}
	return opts, nil
}

// LayoutOptions resolves the options file and applies env overrides.
func (c Config) LayoutOptions() (layout.Options, error) {
	opts, err := LoadLayoutOptions(c.LayoutOptionsFile)
	if err != nil {
		return opts, err
	}
	if c.NormalizeCheckboxes != nil {
		opts.NormalizeCheckboxes = *c.NormalizeCheckboxes
	}
	return opts, nil
}

// RenderStyle returns the document style configured for DOCX output.
func (c Config) RenderStyle() render.Style {
	return render.Style{
		FontFamily:             c.FontFamily,
		FontSize:               c.FontSize,
		UnderlineSectionTitles: c.UnderlineSectionTitles,
	}
}
