package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/ocr"
	"github.com/dgallion1/formgest/internal/ocr/tesseract"
	"github.com/dgallion1/formgest/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	provider    string
	model       string
	languages   string
	showRawText bool
)

var digitizeCmd = &cobra.Command{
	Use:   "digitize <file>",
	Short: "OCR an image (or load a document) and build it",
	Long: `Digitize runs the full pipeline on one file.

Images (png, jpg, tiff, webp, gif) go through the OCR provider with the
prompt for the chosen mode. Text, CSV, HTML, PDF and DOCX files are loaded
directly. Provider errors are reported as-is and not retried. TIFF
scans need the tesseract provider; claude reads png, jpg, gif and webp.

The claude provider reads ANTHROPIC_API_KEY from the environment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings()
		if err != nil {
			return err
		}
		log := newLogger(cmd.ErrOrStderr())

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		var rec ocr.Recognizer
		switch provider {
		case config.ProviderClaude:
			key := os.Getenv("ANTHROPIC_API_KEY")
			if key == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY is required for the claude provider")
			}
			c := ocr.NewClaudeClient(key, model)
			if u := os.Getenv("ANTHROPIC_BASE_URL"); u != "" {
				c.WithBaseURL(u)
			}
			defer c.Close()
			rec = c
		case config.ProviderTesseract:
			rec = tesseract.New(languages)
		default:
			return fmt.Errorf("unknown provider: %s", provider)
		}

		d := pipeline.NewDigitizer(rec, s.opts, s.style, 1, log)
		res, err := d.Run(cmd.Context(), filepath.Base(args[0]), data, s.mode)
		if err != nil {
			return err
		}
		log.Debug("digitized", "file", args[0], "provider", rec.Name(), "elements", len(res.Elements))
		if showRawText {
			fmt.Fprintln(cmd.ErrOrStderr(), res.RawText)
		}
		return emit(cmd, s, res.Document())
	},
}

func init() {
	digitizeCmd.Flags().StringVar(&provider, "provider", config.ProviderClaude, "OCR provider: claude or tesseract")
	digitizeCmd.Flags().StringVar(&model, "model", "claude-sonnet-4-5-20250929", "Anthropic model for the claude provider")
	digitizeCmd.Flags().StringVar(&languages, "languages", "ind+eng", "Tesseract languages")
	digitizeCmd.Flags().BoolVar(&showRawText, "raw", false, "print the recognized text to stderr")
}
