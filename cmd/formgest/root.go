package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/layout"
	"github.com/dgallion1/formgest/internal/render"
	"github.com/spf13/cobra"
)

var (
	modeName     string
	outputFormat string
	outputPath   string
	optionsFile  string
	fontFamily   string
	fontSize     float64
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "formgest",
	Short: "Rebuild scanned paper forms as editable documents",
	Long: `formgest turns OCR text of a paper form into a structured document.

Two layouts are supported:
  - tagged:   [HEADER]/[BODY] sections with "Label: Value" body lines,
              rendered as a centered header and a two-column form table
  - markdown: free text with pipe-delimited tables, rendered as paragraphs
              and bordered grids

Examples:
  formgest build scan.txt -f docx -o form.docx
  formgest digitize photo.jpg --mode markdown -f html -o preview.html`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&modeName, "mode", "m", string(layout.ModeTagged), "layout mode: tagged (a) or markdown (b)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "format", "f", "yaml", "output format: json, yaml, md, html, docx or pdf",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputPath, "out", "o", "", "output file (default: stdout)",
	)
	rootCmd.PersistentFlags().StringVar(
		&optionsFile, "options", os.Getenv("LAYOUT_OPTIONS_FILE"), "layout options YAML file",
	)
	rootCmd.PersistentFlags().StringVar(
		&fontFamily, "font", render.DefaultStyle().FontFamily, "document font family",
	)
	rootCmd.PersistentFlags().Float64Var(
		&fontSize, "font-size", render.DefaultStyle().FontSize, "document base font size in points",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "debug logging to stderr",
	)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(digitizeCmd)
}

// settings are the resolved persistent flags.
type settings struct {
	mode   layout.Mode
	format string
	opts   layout.Options
	style  render.Style
}

func resolveSettings() (settings, error) {
	mode, err := layout.ParseMode(modeName)
	if err != nil {
		return settings{}, err
	}
	format, err := parseFormat(outputFormat)
	if err != nil {
		return settings{}, err
	}
	if (format == formatDOCX || format == formatPDF) && outputPath == "" {
		return settings{}, fmt.Errorf("%s output needs --out", format)
	}
	opts, err := config.LoadLayoutOptions(optionsFile)
	if err != nil {
		return settings{}, err
	}
	style := render.DefaultStyle()
	style.FontFamily = fontFamily
	style.FontSize = fontSize
	return settings{mode: mode, format: format, opts: opts, style: style}, nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openOutput returns the destination writer and a close func.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputPath == "" || outputPath == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output: %w", err)
	}
	return f, f.Close, nil
}

// emit writes doc in the resolved format, to --out or stdout.
func emit(cmd *cobra.Command, s settings, doc layout.Document) error {
	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := writeOutput(w, s.format, doc, s.style); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
