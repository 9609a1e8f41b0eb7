package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVLoader turns a spreadsheet export into one pipe-delimited table, so
// markdown mode rebuilds it as a single grid. The first record stays a
// regular row; no header separator is written.
type CSVLoader struct{}

func (l *CSVLoader) Load(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		lines = append(lines, tableRow(rec))
	}
	return strings.Join(lines, "\n"), nil
}
