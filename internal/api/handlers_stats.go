package api

import (
	"net/http"

	"github.com/dgallion1/formgest/internal/ocr"
)

func (s *Server) handleOCRStats(w http.ResponseWriter, r *http.Request) {
	reporter, ok := s.recognizer.(ocr.StatsReporter)
	if !ok || reporter.LatencyStats() == nil {
		jsonError(w, "ocr stats unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := map[string]any{
		"provider":    s.recognizer.Name(),
		"stats":       reporter.LatencyStats().Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	}
	if m, ok := s.recognizer.(interface{ Model() string }); ok {
		resp["model"] = m.Model()
	}
	writeJSON(w, http.StatusOK, resp)
}
