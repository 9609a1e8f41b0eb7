package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Loader extracts raw, line-oriented text from a non-image document.
type Loader interface {
	Load(r io.Reader, filename string) (string, error)
}

// imageExtensions are routed to OCR instead of a Loader.
var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// ForFile returns the loader for a filename's extension.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown":
		return &TextLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	default:
		if IsImage(filename) {
			return nil, fmt.Errorf("%s is an image and needs OCR", filename)
		}
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsImage reports whether filename is an image that needs OCR.
func IsImage(filename string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ImageMediaType returns the MIME type for an image filename, or "".
func ImageMediaType(filename string) string {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsSupported reports whether filename is either an image or has a Loader.
func IsSupported(filename string) bool {
	if IsImage(filename) {
		return true
	}
	_, err := ForFile(filename)
	return err == nil
}

// tableRow formats cells as a pipe-delimited line.
func tableRow(cells []string) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(strings.ReplaceAll(c, "|", "/"))
		sb.WriteString(" |")
	}
	return sb.String()
}
