package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for formgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	recognizer   ocr.Recognizer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. recognizer is only
// used for reporting and may be nil.
func NewServer(orch *pipeline.Orchestrator, recognizer ocr.Recognizer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		recognizer:   recognizer,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.FormgestAPIKey, s.log))

		r.Post("/api/digitize", s.handleDigitize)
		r.Post("/api/digitize/batch", s.handleBatchDigitize)
		r.Post("/api/build", s.handleBuild)

		r.Route("/api/jobs/{jobID}", func(r chi.Router) {
			r.Get("/status", s.handleJobStatus)
			r.Get("/elements", s.handleJobElements)
			r.Get("/document", s.handleJobDocument)
			r.Get("/pdf", s.handleJobPDF)
			r.Get("/preview", s.handleJobPreview)
		})

		r.Get("/api/stats/ocr", s.handleOCRStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
