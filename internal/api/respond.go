package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/formgest/internal/layout"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Multipart names may carry client paths; keep the base name only.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}

// modeOrDefault parses a request's mode, falling back to the configured
// default when empty.
func (s *Server) modeOrDefault(v string) (layout.Mode, error) {
	if strings.TrimSpace(v) == "" {
		return s.cfg.DefaultMode, nil
	}
	return layout.ParseMode(v)
}

// downloadName maps an upload name to its download name with ext.
func downloadName(filename, ext string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "document"
	}
	return base + ext
}

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	pdfContentType  = "application/pdf"
)
