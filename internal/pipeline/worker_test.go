package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/render"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeRecognizer returns canned text and remembers what it was asked.
type fakeRecognizer struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	prompts []string
	images  []ocr.Image
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(_ context.Context, img ocr.Image, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.images = append(f.images, img)
	return f.text, f.err
}

const formText = "[HEADER]\nOMBUDSMAN RI\n[BODY]\nNama: Budi....\nALAMAT\nKota: Jakarta\n"

func newTestDigitizer(r ocr.Recognizer) *Digitizer {
	return NewDigitizer(r, layout.DefaultOptions(), render.DefaultStyle(), 1, testLog)
}

func TestDigitizerRunImage(t *testing.T) {
	rec := &fakeRecognizer{text: formText}
	d := newTestDigitizer(rec)

	res, err := d.Run(context.Background(), "scan.png", []byte("\x89PNG"), layout.ModeTagged)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("expected 1 recognize call, got %d", rec.calls)
	}
	if rec.prompts[0] != ocr.PromptFor(layout.ModeTagged) {
		t.Error("expected tagged prompt")
	}
	if rec.images[0].MediaType != "image/png" {
		t.Errorf("expected image/png, got %q", rec.images[0].MediaType)
	}
	if res.RawText != formText {
		t.Errorf("expected raw text kept, got %q", res.RawText)
	}
	if len(res.Elements) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(res.Elements))
	}
	if f, ok := res.Elements[1].(layout.Field); !ok || f.Value != "Budi" {
		t.Errorf("expected Field Nama=Budi, got %#v", res.Elements[1])
	}
	if !bytes.HasPrefix(res.DOCX, []byte("PK")) {
		t.Error("expected DOCX zip bytes")
	}
	if res.Document().Mode != layout.ModeTagged {
		t.Errorf("expected tagged document, got %s", res.Document().Mode)
	}
}

func TestDigitizerRunTextSkipsOCR(t *testing.T) {
	rec := &fakeRecognizer{}
	d := newTestDigitizer(rec)

	res, err := d.Run(context.Background(), "ocr.txt", []byte("| A | B |\n|---|---|\n| 1 | 2 |\n"), layout.ModeMarkdown)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("expected no OCR calls for text input, got %d", rec.calls)
	}
	if len(res.Elements) != 1 || res.Elements[0].Kind() != layout.KindTable {
		t.Errorf("expected one table, got %#v", res.Elements)
	}
}

func TestDigitizerNoRecognizer(t *testing.T) {
	d := newTestDigitizer(nil)
	_, err := d.Run(context.Background(), "scan.jpg", []byte("x"), layout.ModeTagged)
	if !errors.Is(err, ErrNoRecognizer) {
		t.Errorf("expected ErrNoRecognizer, got %v", err)
	}
}

func TestDigitizerUnsupportedFile(t *testing.T) {
	d := newTestDigitizer(nil)
	if _, err := d.Run(context.Background(), "sheet.xlsx", []byte("x"), layout.ModeTagged); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestDigitizerUnknownMode(t *testing.T) {
	d := newTestDigitizer(nil)
	if _, err := d.Run(context.Background(), "a.txt", []byte("x"), layout.Mode("c")); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDigitizerProviderErrorNotRetried(t *testing.T) {
	perr := &ocr.ProviderError{Provider: "fake", StatusCode: 429, Message: "rate limited"}
	rec := &fakeRecognizer{err: perr}
	d := newTestDigitizer(rec)

	_, err := d.Run(context.Background(), "scan.png", []byte("x"), layout.ModeTagged)
	var got *ocr.ProviderError
	if !errors.As(err, &got) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if got.StatusCode != 429 {
		t.Errorf("expected status 429, got %d", got.StatusCode)
	}
	if rec.calls != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", rec.calls)
	}
}

func TestDigitizerRecognizeCanceledWhileWaiting(t *testing.T) {
	d := newTestDigitizer(&fakeRecognizer{})
	d.sem <- struct{}{} // occupy the only slot
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Recognize(ctx, ocr.Image{}, layout.ModeTagged)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDigitizerSetOptions(t *testing.T) {
	d := newTestDigitizer(nil)
	raw := "[HEADER]\nDINAS KESEHATAN\n[BODY]\nNama: Budi"

	doc, err := d.Build(raw, layout.ModeTagged)
	if err != nil {
		t.Fatal(err)
	}
	if h := doc.Elements[0].(layout.HeaderText); h.Emphasized {
		t.Error("expected plain header with default keywords")
	}

	opts := layout.DefaultOptions()
	opts.Keywords = []string{"DINAS"}
	d.SetOptions(opts)

	doc, err = d.Build(raw, layout.ModeTagged)
	if err != nil {
		t.Fatal(err)
	}
	if h := doc.Elements[0].(layout.HeaderText); !h.Emphasized {
		t.Error("expected emphasized header after options change")
	}
}

// pngOnly reads PNG and nothing else.
type pngOnly struct{ fakeRecognizer }

func (p *pngOnly) Accepts(mediaType string) bool { return mediaType == "image/png" }

func TestDigitizerUnsupportedImageFormat(t *testing.T) {
	rec := &pngOnly{fakeRecognizer{text: formText}}
	d := newTestDigitizer(rec)

	_, err := d.Run(context.Background(), "scan.tiff", []byte("II*\x00"), layout.ModeTagged)
	if !errors.Is(err, ocr.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("expected provider not to be called, got %d calls", rec.calls)
	}

	if _, err := d.Run(context.Background(), "scan.png", []byte("\x89PNG"), layout.ModeTagged); err != nil {
		t.Fatalf("expected png to pass, got %v", err)
	}
}

func TestWorkerProcessFailure(t *testing.T) {
	rec := &fakeRecognizer{err: &ocr.ProviderError{Provider: "fake", Message: "auth"}}
	w := NewWorker(newTestDigitizer(rec), testLog)
	job := NewJob("scan.png", []byte("x"), layout.ModeTagged)

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", snap.Status)
	}
	if snap.Phase != "recognizing" {
		t.Errorf("expected failure in recognizing, got %q", snap.Phase)
	}
	if snap.Error == "" {
		t.Error("expected error message on job")
	}
	if job.FileData() == nil {
		t.Error("expected upload kept so the job can be retried")
	}
}

func TestWorkerProcessSuccess(t *testing.T) {
	w := NewWorker(newTestDigitizer(nil), testLog)
	job := NewJob("form.txt", []byte(formText), layout.ModeTagged)

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (%s)", snap.Status, snap.Error)
	}
	if snap.Elements != 4 {
		t.Errorf("expected 4 elements, got %d", snap.Elements)
	}
	if len(job.Result().DOCX) == 0 {
		t.Error("expected rendered DOCX")
	}
}

func TestOrchestratorRunsJobs(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 10, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, newTestDigitizer(&fakeRecognizer{text: formText}), testLog)
	o.Start(context.Background())
	defer o.Stop()

	jobs := []*Job{
		NewJob("a.png", []byte("a"), layout.ModeTagged),
		NewJob("b.txt", []byte("Nama: X"), layout.ModeMarkdown),
	}
	for _, j := range jobs {
		if err := o.Submit(j); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for _, j := range jobs {
		for !j.Snapshot().Status.Done() {
			if time.Now().After(deadline) {
				t.Fatalf("job %s did not finish", j.ID)
			}
			time.Sleep(5 * time.Millisecond)
		}
		if s := j.Snapshot().Status; s != StatusCompleted {
			t.Errorf("expected completed, got %q", s)
		}
		if o.GetJob(j.ID) != j {
			t.Errorf("expected job %s in store", j.ID)
		}
	}
}

func TestOrchestratorQueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, newTestDigitizer(nil), testLog)
	// Not started: nothing drains the queue.

	first := NewJob("a.txt", nil, layout.ModeTagged)
	second := NewJob("b.txt", nil, layout.ModeTagged)
	if err := o.Submit(first); err != nil {
		t.Fatalf("expected first submit to succeed, got %v", err)
	}
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if s := second.Snapshot(); s.Status != StatusFailed || s.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %s/%s", s.Status, s.Phase)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected depth 1, got %d", o.QueueDepth())
	}
}
