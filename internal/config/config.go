package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/formgest/internal/layout"
)

// OCR providers.
const (
	ProviderClaude    = "claude"
	ProviderTesseract = "tesseract"
)

type Config struct {
	Port string

	// Auth
	FormgestAPIKey string

	// OCR
	OCRProvider        string
	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicBaseURL   string
	TesseractLanguages string
	StatsWindow        time.Duration

	// Worker pool
	WorkerCount            int
	MaxQueueSize           int
	MaxConcurrentRecognize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Layout
	DefaultMode       layout.Mode
	LayoutOptionsFile string
	// NormalizeCheckboxes overrides the options file when set.
	NormalizeCheckboxes *bool

	// Rendering
	FontFamily             string
	FontSize               float64
	UnderlineSectionTitles bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		FormgestAPIKey: os.Getenv("FORMGEST_API_KEY"),

		OCRProvider:        envOr("OCR_PROVIDER", ProviderClaude),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		AnthropicBaseURL:   os.Getenv("ANTHROPIC_BASE_URL"),
		TesseractLanguages: envOr("TESSERACT_LANGUAGES", "ind+eng"),
		StatsWindow:        envDuration("OCR_STATS_WINDOW", 15*time.Minute),

		WorkerCount:            envInt("WORKER_COUNT", 2),
		MaxQueueSize:           envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentRecognize: envInt("MAX_CONCURRENT_RECOGNIZE", 2),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20<<20), // 20MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		DefaultMode:       layout.Mode(envOr("DEFAULT_MODE", string(layout.ModeTagged))),
		LayoutOptionsFile: os.Getenv("LAYOUT_OPTIONS_FILE"),

		FontFamily:             envOr("FONT_FAMILY", "Arial"),
		FontSize:               envFloat("FONT_SIZE", 10),
		UnderlineSectionTitles: envBool("UNDERLINE_SECTION_TITLES", true),
	}

	if m, err := layout.ParseMode(string(cfg.DefaultMode)); err == nil {
		cfg.DefaultMode = m
	}
	if v := os.Getenv("NORMALIZE_CHECKBOXES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NormalizeCheckboxes = &b
		}
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentRecognize <= 0 {
		cfg.MaxConcurrentRecognize = 2
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 15 * time.Minute
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 10
	}

	return cfg
}

func (c Config) Validate() error {
	if c.FormgestAPIKey == "" {
		return fmt.Errorf("FORMGEST_API_KEY is required")
	}
	switch c.OCRProvider {
	case ProviderClaude:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for OCR_PROVIDER=%s", ProviderClaude)
		}
	case ProviderTesseract:
	default:
		return fmt.Errorf("unknown OCR_PROVIDER %q", c.OCRProvider)
	}
	if _, err := layout.ParseMode(string(c.DefaultMode)); err != nil {
		return fmt.Errorf("DEFAULT_MODE: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
