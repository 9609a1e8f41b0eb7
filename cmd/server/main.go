package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/formgest/internal/api"
	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/ocr/tesseract"
	"github.com/dgallion1/formgest/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	opts, err := cfg.LayoutOptions()
	if err != nil {
		log.Error("invalid layout options", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the OCR provider.
	var recognizer ocr.Recognizer
	closeRecognizer := func() {}
	switch cfg.OCRProvider {
	case config.ProviderTesseract:
		t := tesseract.New(cfg.TesseractLanguages)
		t.Stats = ocr.NewStats(cfg.StatsWindow)
		recognizer = t
	default:
		c := ocr.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if cfg.AnthropicBaseURL != "" {
			c.WithBaseURL(cfg.AnthropicBaseURL)
		}
		c.Stats = ocr.NewStats(cfg.StatsWindow)
		recognizer = c
		closeRecognizer = c.Close
	}

	// Initialize pipeline.
	digitizer := pipeline.NewDigitizer(recognizer, opts, cfg.RenderStyle(), cfg.MaxConcurrentRecognize, log)
	if err := cfg.WatchLayoutOptions(ctx, log, digitizer.SetOptions); err != nil {
		log.Warn("layout options will not hot-reload", "error", err)
	}
	orch := pipeline.NewOrchestrator(cfg, digitizer, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, recognizer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		closeRecognizer()
	}()

	log.Info("starting formgest",
		"port", cfg.Port,
		"ocr_provider", recognizer.Name(),
		"default_mode", cfg.DefaultMode,
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
