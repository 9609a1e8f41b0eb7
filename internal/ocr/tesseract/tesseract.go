// Package tesseract provides an OCR recognizer backed by the local
// Tesseract engine through gosseract. It needs Tesseract and its language
// data installed, e.g. apt-get install tesseract-ocr tesseract-ocr-ind.
package tesseract

import (
	"context"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/dgallion1/formgest/internal/ocr"
)

// Client runs the local Tesseract engine. Tesseract takes no
// instructions, so the prompt is ignored and tagged-mode markers will
// not appear in its output.
type Client struct {
	languages []string

	Stats *ocr.Stats
}

// New uses languages such as "ind+eng" or "eng".
func New(languages string) *Client {
	var langs []string
	for _, l := range strings.Split(languages, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &Client{languages: langs, Stats: ocr.NewStats(time.Hour)}
}

func (c *Client) Name() string { return "tesseract" }

func (c *Client) LatencyStats() *ocr.Stats { return c.Stats }

// Recognize creates a fresh engine per call; gosseract clients are not
// safe for concurrent use.
func (c *Client) Recognize(ctx context.Context, img ocr.Image, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	text, err := c.recognize(img)
	if err != nil {
		c.Stats.RecordFailure(time.Since(start).Milliseconds())
		return "", &ocr.ProviderError{Provider: c.Name(), Err: err}
	}
	c.Stats.Record(time.Since(start).Milliseconds())
	return text, nil
}

func (c *Client) recognize(img ocr.Image) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(c.languages) > 0 {
		if err := client.SetLanguage(c.languages...); err != nil {
			return "", err
		}
	}
	if err := client.SetImageFromBytes(img.Data); err != nil {
		return "", err
	}
	text, err := client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
