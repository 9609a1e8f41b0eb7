package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dgallion1/formgest/internal/layout"
)

var envKeys = []string{
	"PORT", "FORMGEST_API_KEY", "OCR_PROVIDER", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
	"ANTHROPIC_BASE_URL", "TESSERACT_LANGUAGES", "OCR_STATS_WINDOW", "WORKER_COUNT",
	"MAX_QUEUE_SIZE", "MAX_CONCURRENT_RECOGNIZE", "MAX_UPLOAD_BYTES", "JOB_TTL",
	"DEFAULT_MODE", "LAYOUT_OPTIONS_FILE", "NORMALIZE_CHECKBOXES", "FONT_FAMILY",
	"FONT_SIZE", "UNDERLINE_SECTION_TITLES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Port != "8091" {
		t.Errorf("expected port 8091, got %s", cfg.Port)
	}
	if cfg.OCRProvider != ProviderClaude {
		t.Errorf("expected claude provider, got %s", cfg.OCRProvider)
	}
	if cfg.DefaultMode != layout.ModeTagged {
		t.Errorf("expected tagged mode, got %s", cfg.DefaultMode)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %s", cfg.JobTTL)
	}
	if cfg.NormalizeCheckboxes != nil {
		t.Error("expected no checkbox override")
	}
	if cfg.FontFamily != "Arial" || cfg.FontSize != 10 || !cfg.UnderlineSectionTitles {
		t.Errorf("expected Arial 10pt underlined, got %s %v %v", cfg.FontFamily, cfg.FontSize, cfg.UnderlineSectionTitles)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("MAX_QUEUE_SIZE", "-1")
	t.Setenv("JOB_TTL", "garbage")
	t.Setenv("DEFAULT_MODE", "b")
	t.Setenv("NORMALIZE_CHECKBOXES", "false")
	t.Setenv("FONT_SIZE", "11.5")

	cfg := Load()
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected non-positive queue size to fall back to 100, got %d", cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected unparsable TTL to fall back to 1h, got %s", cfg.JobTTL)
	}
	if cfg.DefaultMode != layout.ModeMarkdown {
		t.Errorf("expected alias b to resolve to markdown, got %s", cfg.DefaultMode)
	}
	if cfg.NormalizeCheckboxes == nil || *cfg.NormalizeCheckboxes {
		t.Error("expected checkbox override false")
	}
	if cfg.FontSize != 11.5 {
		t.Errorf("expected 11.5, got %v", cfg.FontSize)
	}
}

func TestValidate(t *testing.T) {
	base := Config{FormgestAPIKey: "k", OCRProvider: ProviderClaude, AnthropicAPIKey: "a", DefaultMode: layout.ModeTagged}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid claude", func(*Config) {}, false},
		{"missing api key", func(c *Config) { c.FormgestAPIKey = "" }, true},
		{"claude without key", func(c *Config) { c.AnthropicAPIKey = "" }, true},
		{"tesseract without key", func(c *Config) { c.OCRProvider = ProviderTesseract; c.AnthropicAPIKey = "" }, false},
		{"unknown provider", func(c *Config) { c.OCRProvider = "abbyy" }, true},
		{"unknown mode", func(c *Config) { c.DefaultMode = "html" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestParseLayoutOptionsPartial(t *testing.T) {
	opts, err := ParseLayoutOptions([]byte("keywords: [KEMENTERIAN]\ncheckbox:\n  checked: \"☒\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(opts.Keywords, []string{"KEMENTERIAN"}) {
		t.Errorf("expected keywords replaced, got %v", opts.Keywords)
	}
	if opts.Checkbox.Checked != "☒" {
		t.Errorf("expected checked glyph ☒, got %q", opts.Checkbox.Checked)
	}
	if opts.Checkbox.Unchecked != "□" {
		t.Errorf("expected default unchecked glyph kept, got %q", opts.Checkbox.Unchecked)
	}
	def := layout.DefaultOptions()
	if !reflect.DeepEqual(opts.NoiseKeywords, def.NoiseKeywords) {
		t.Errorf("expected default noise keywords kept, got %v", opts.NoiseKeywords)
	}
	if !opts.NormalizeCheckboxes || !opts.NormalizeUnicode {
		t.Error("expected default toggles kept")
	}
}

func TestParseLayoutOptionsEmpty(t *testing.T) {
	opts, err := ParseLayoutOptions(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(opts, layout.DefaultOptions()) {
		t.Errorf("expected defaults, got %+v", opts)
	}
}

func TestParseLayoutOptionsUnknownKey(t *testing.T) {
	if _, err := ParseLayoutOptions([]byte("keywordz: [X]\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestConfigLayoutOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("normalize_checkboxes: true\nnoise_keywords: [Ribbon]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	off := false
	cfg := Config{LayoutOptionsFile: path, NormalizeCheckboxes: &off}

	opts, err := cfg.LayoutOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.NormalizeCheckboxes {
		t.Error("expected env override to win over file")
	}
	if !reflect.DeepEqual(opts.NoiseKeywords, []string{"Ribbon"}) {
		t.Errorf("expected noise keywords from file, got %v", opts.NoiseKeywords)
	}

	cfg.LayoutOptionsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.LayoutOptions(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderStyle(t *testing.T) {
	cfg := Config{FontFamily: "Calibri", FontSize: 12}
	s := cfg.RenderStyle()
	if s.FontFamily != "Calibri" || s.FontSize != 12 || s.UnderlineSectionTitles {
		t.Errorf("unexpected style %+v", s)
	}
}
