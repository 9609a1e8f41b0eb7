package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/source"
)

// Worker processes a single digitization job.
type Worker struct {
	digitizer *Digitizer
	log       *slog.Logger
}

func NewWorker(d *Digitizer, log *slog.Logger) *Worker {
	return &Worker{digitizer: d, log: log}
}

// Process runs extract, build and render for a job, recording each phase.
// A failure in any phase marks the job failed and stops there.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename, "mode", job.Mode)

	// Phase 1: raw text
	phase := "loading"
	status := StatusLoading
	if source.IsImage(job.Filename) {
		phase, status = "recognizing", StatusRecognizing
	}
	job.SetStatus(status, phase)
	raw, err := w.digitizer.Extract(ctx, job.Filename, job.FileData(), job.Mode)
	if err != nil {
		var perr *ocr.ProviderError
		if errors.As(err, &perr) {
			log.Error("ocr provider failed", "provider", perr.Provider, "status_code", perr.StatusCode, "error", err)
		} else {
			log.Error("extract failed", "error", err)
		}
		job.Fail(phase, err)
		return
	}
	log.Info("extracted text", "chars", len(raw))

	// Phase 2: layout
	job.SetStatus(StatusBuilding, "building")
	doc, err := w.digitizer.Build(raw, job.Mode)
	if err != nil {
		log.Error("build failed", "error", err)
		job.Fail("building", err)
		return
	}
	log.Info("built layout", "elements", len(doc.Elements))

	// Phase 3: render
	job.SetStatus(StatusRendering, "rendering")
	out, err := w.digitizer.Render(doc)
	if err != nil {
		log.Error("render failed", "error", err)
		job.Fail("rendering", err)
		return
	}

	job.Complete(&Result{Mode: doc.Mode, RawText: raw, Elements: doc.Elements, DOCX: out})
	log.Info("job complete", "docx_bytes", len(out))
}
