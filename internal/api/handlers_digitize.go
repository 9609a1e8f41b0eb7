package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/pipeline"
	"github.com/dgallion1/formgest/internal/source"
)

func (s *Server) handleDigitize(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	mode, err := s.modeOrDefault(r.FormValue("mode"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	uploads := r.MultipartForm.File["file"]
	if len(uploads) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}

	filename, data, code, err := s.readUpload(uploads[0])
	if err != nil {
		jsonError(w, err.Error(), code)
		return
	}

	job := pipeline.NewJob(filename, data, mode)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, jobAccepted(job))
}

func (s *Server) handleBatchDigitize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	mode, err := s.modeOrDefault(r.FormValue("mode"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename, data, _, err := s.readUpload(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": sanitizeFilename(fh.Filename),
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(filename, data, mode)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}
		results = append(results, jobAccepted(job))
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

// readUpload validates and reads one multipart file. On error it also
// returns the status code to answer with.
func (s *Server) readUpload(fh *multipart.FileHeader) (string, []byte, int, error) {
	filename := sanitizeFilename(fh.Filename)
	if !source.IsSupported(filename) {
		return filename, nil, http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	if mt := source.ImageMediaType(filename); mt != "" && s.recognizer != nil && !ocr.Accepts(s.recognizer, mt) {
		return filename, nil, http.StatusUnsupportedMediaType, fmt.Errorf("%s cannot read %s images", s.recognizer.Name(), filepath.Ext(filename))
	}

	f, err := fh.Open()
	if err != nil {
		return filename, nil, http.StatusInternalServerError, fmt.Errorf("failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return filename, nil, http.StatusInternalServerError, fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return filename, nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return filename, data, 0, nil
}

func jobAccepted(job *pipeline.Job) map[string]any {
	snap := job.Snapshot()
	return map[string]any{
		"job_id":   snap.ID,
		"filename": snap.Filename,
		"mode":     snap.Mode,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s/status", snap.ID),
	}
}
