package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/formgest/internal/layout"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Build a document from OCR text",
	Long: `Build classifies OCR text that has already been recognized.

Reads the file argument, or stdin when it is omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings()
		if err != nil {
			return err
		}

		var raw []byte
		if len(args) == 0 || args[0] == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		doc, err := layout.BuildDocument(string(raw), s.mode, s.opts)
		if err != nil {
			return err
		}
		newLogger(cmd.ErrOrStderr()).Debug("built layout", "mode", s.mode, "elements", len(doc.Elements))
		return emit(cmd, s, doc)
	},
}
