package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/render"
)

type buildRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

// handleBuild classifies already-recognized text synchronously. The
// response format follows ?format=: json (default), docx, pdf, markdown or html.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	mode, err := s.modeOrDefault(req.Mode)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := s.orchestrator.Digitizer()
	doc, err := d.Build(req.Text, mode)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, map[string]any{
			"mode":     doc.Mode,
			"elements": layout.Records(doc.Elements),
		})
	case "docx":
		out, err := d.Render(doc)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", docxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="form.docx"`)
		w.Write(out)
	case "pdf":
		var buf bytes.Buffer
		if err := render.PDF(&buf, doc, d.Style()); err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", pdfContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="form.pdf"`)
		w.Write(buf.Bytes())
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(render.Markdown(doc)))
	case "html":
		page, err := render.HTML(doc)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	default:
		jsonError(w, "unknown format: "+format, http.StatusBadRequest)
	}
}
