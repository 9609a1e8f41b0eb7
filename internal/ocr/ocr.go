package ocr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Recognizer turns an image into raw text under an instructional prompt.
type Recognizer interface {
	Recognize(ctx context.Context, img Image, prompt string) (string, error)
	Name() string
}

// ErrUnsupportedImage is returned, without calling the provider, for an
// image format the provider cannot read.
var ErrUnsupportedImage = errors.New("image format not supported by OCR provider")

// FormatChecker is implemented by recognizers that read only some image
// formats.
type FormatChecker interface {
	Accepts(mediaType string) bool
}

// Accepts reports whether rec can read mediaType. A recognizer without a
// FormatChecker accepts everything.
func Accepts(rec Recognizer, mediaType string) bool {
	if fc, ok := rec.(FormatChecker); ok {
		return fc.Accepts(mediaType)
	}
	return true
}

// StatsReporter is implemented by recognizers that record call latency.
type StatsReporter interface {
	LatencyStats() *Stats
}

// Image is an encoded image and its MIME type.
type Image struct {
	Data      []byte
	MediaType string
}

// NewImage wraps data, sniffing the media type when mediaType is empty.
func NewImage(data []byte, mediaType string) Image {
	if mediaType == "" {
		mediaType = DetectMediaType(data)
	}
	return Image{Data: data, MediaType: mediaType}
}

// DetectMediaType sniffs an image MIME type from its leading bytes.
func DetectMediaType(data []byte) string {
	return http.DetectContentType(data)
}

// ProviderError is a failed OCR invocation: network, auth, quota or a
// malformed response. It is surfaced to the caller as-is and never retried.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, truncate(e.Message, 200))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
