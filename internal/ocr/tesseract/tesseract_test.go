package tesseract

import (
	"context"
	"testing"

	"github.com/dgallion1/formgest/internal/ocr"
)

func TestNew_Languages(t *testing.T) {
	c := New(" ind + eng ")
	if len(c.languages) != 2 || c.languages[0] != "ind" || c.languages[1] != "eng" {
		t.Errorf("expected [ind eng], got %v", c.languages)
	}
	if c.Name() != "tesseract" {
		t.Errorf("expected name tesseract, got %q", c.Name())
	}
}

func TestRecognize_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New("eng").Recognize(ctx, ocr.Image{}, ""); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
