package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor normalizes raw document content into plain text with block
// boundaries preserved as newlines. When extraction degrades (e.g. malformed
// markup) an Extractor may return usable fallback text alongside a non-nil
// error; callers should treat a non-empty result as safe to proceed with.
type Extractor interface {
	Extract(r io.Reader) (string, error)
}

// SupportedExtensions lists file extensions the upload endpoint can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &Text{}, nil
	case ".md", ".markdown":
		return &Markdown{}, nil
	case ".html", ".htm":
		return &HTML{}, nil
	case ".pdf":
		return &PDF{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCX{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// collapseNewlines reduces runs of 3+ consecutive newlines to exactly 2.
func collapseNewlines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
