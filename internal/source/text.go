package source

import (
	"bufio"
	"io"
	"strings"
)

// TextLoader handles plain text and Markdown files, which already hold
// OCR-shaped text.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
