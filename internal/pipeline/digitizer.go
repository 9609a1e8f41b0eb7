package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/render"
	"github.com/dgallion1/formgest/internal/source"
)

// ErrNoRecognizer is returned for image input when no OCR provider is
// configured.
var ErrNoRecognizer = errors.New("no OCR provider configured")

// Result is the output of one digitization run.
type Result struct {
	Mode     layout.Mode
	RawText  string
	Elements []layout.Element
	DOCX     []byte
}

// Document returns the elements as a renderable document.
func (r *Result) Document() layout.Document {
	return layout.Document{Mode: r.Mode, Elements: r.Elements}
}

// Digitizer turns an uploaded file into raw text, elements and a DOCX.
// It is safe for concurrent use; concurrent OCR calls are bounded.
type Digitizer struct {
	recognizer ocr.Recognizer
	style      render.Style
	log        *slog.Logger
	sem        chan struct{}

	mu   sync.RWMutex
	opts layout.Options
}

// NewDigitizer creates a Digitizer. recognizer may be nil, in which case
// image input fails with ErrNoRecognizer.
func NewDigitizer(recognizer ocr.Recognizer, opts layout.Options, style render.Style, maxConcurrentRecognize int, log *slog.Logger) *Digitizer {
	if maxConcurrentRecognize <= 0 {
		maxConcurrentRecognize = 1
	}
	return &Digitizer{
		recognizer: recognizer,
		opts:       opts,
		style:      style,
		log:        log,
		sem:        make(chan struct{}, maxConcurrentRecognize),
	}
}

// Options returns the layout options the Digitizer builds with.
func (d *Digitizer) Options() layout.Options {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.opts
}

// SetOptions replaces the layout options for subsequent builds. Runs
// already past Build are unaffected.
func (d *Digitizer) SetOptions(opts layout.Options) {
	d.mu.Lock()
	d.opts = opts
	d.mu.Unlock()
}

// Style returns the render style.
func (d *Digitizer) Style() render.Style { return d.style }

// Run executes the whole pipeline synchronously. OCR failures come back as
// *ocr.ProviderError.
func (d *Digitizer) Run(ctx context.Context, filename string, data []byte, mode layout.Mode) (*Result, error) {
	raw, err := d.Extract(ctx, filename, data, mode)
	if err != nil {
		return nil, err
	}
	doc, err := d.Build(raw, mode)
	if err != nil {
		return nil, err
	}
	out, err := d.Render(doc)
	if err != nil {
		return nil, err
	}
	return &Result{Mode: doc.Mode, RawText: raw, Elements: doc.Elements, DOCX: out}, nil
}

// Extract produces raw text: OCR for images, a source loader otherwise.
func (d *Digitizer) Extract(ctx context.Context, filename string, data []byte, mode layout.Mode) (string, error) {
	if source.IsImage(filename) {
		return d.Recognize(ctx, ocr.NewImage(data, source.ImageMediaType(filename)), mode)
	}
	loader, err := source.ForFile(filename)
	if err != nil {
		return "", err
	}
	raw, err := loader.Load(bytes.NewReader(data), filename)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", filename, err)
	}
	return raw, nil
}

// Recognize runs the OCR provider with the prompt for mode. Errors are
// not retried.
func (d *Digitizer) Recognize(ctx context.Context, img ocr.Image, mode layout.Mode) (string, error) {
	if d.recognizer == nil {
		return "", ErrNoRecognizer
	}
	if !ocr.Accepts(d.recognizer, img.MediaType) {
		return "", fmt.Errorf("%s: %w: %s", d.recognizer.Name(), ocr.ErrUnsupportedImage, img.MediaType)
	}
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-d.sem }()

	start := time.Now()
	raw, err := d.recognizer.Recognize(ctx, img, ocr.PromptFor(mode))
	if err != nil {
		return "", err
	}
	d.log.Debug("recognized image", "provider", d.recognizer.Name(), "chars", len(raw), "duration_ms", time.Since(start).Milliseconds())
	return raw, nil
}

// Build classifies raw text into a document.
func (d *Digitizer) Build(raw string, mode layout.Mode) (layout.Document, error) {
	return layout.BuildDocument(raw, mode, d.Options())
}

// Render writes doc as DOCX bytes.
func (d *Digitizer) Render(doc layout.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := render.DOCX(&buf, doc, d.style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
