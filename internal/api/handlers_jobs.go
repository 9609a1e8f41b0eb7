package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/pipeline"
	"github.com/dgallion1/formgest/internal/render"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// finishedJob resolves the job and its result, answering 404 or 409 itself
// when there is none yet.
func (s *Server) finishedJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, *pipeline.Result, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, nil, false
	}
	res := job.Result()
	if res == nil {
		snap := job.Snapshot()
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  fmt.Sprintf("job is %s", snap.Status),
			"status": snap.Status,
			"detail": snap.Error,
		})
		return nil, nil, false
	}
	return job, res, true
}

func (s *Server) handleJobElements(w http.ResponseWriter, r *http.Request) {
	job, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":   job.ID,
		"mode":     res.Mode,
		"raw_text": res.RawText,
		"elements": layout.Records(res.Elements),
	})
}

func (s *Server) handleJobDocument(w http.ResponseWriter, r *http.Request) {
	job, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(job.Filename, ".docx")))
	w.Write(res.DOCX)
}

func (s *Server) handleJobPDF(w http.ResponseWriter, r *http.Request) {
	job, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.PDF(&buf, res.Document(), s.orchestrator.Digitizer().Style()); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", pdfContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(job.Filename, ".pdf")))
	w.Write(buf.Bytes())
}

func (s *Server) handleJobPreview(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	page, err := render.HTML(res.Document())
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
