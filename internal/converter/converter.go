// Package converter turns EPUB files into PDFs for in-browser viewing.
//
// The conversion is a lossy, best-effort text extraction, not faithful
// HTML/CSS rendering: content documents are reduced to plain paragraphs and
// reflowed onto Letter pages. One corrupt chapter does not abort the book;
// an unreadable archive or a book with no extractable text does, with a
// *ConversionError.
package converter

import (
	"path/filepath"
	"strings"
)

// convertedSuffix is appended to the source base name to form the output
// path. The viewable-PDF lookup depends on this exact rule, so PDFPath is
// the only place it lives.
const convertedSuffix = "_converted"

// PDFPath returns the deterministic output location for the PDF generated
// from originalPath: same directory and base name, with the converted
// suffix and a .pdf extension.
func PDFPath(originalPath string) string {
	base := strings.TrimSuffix(originalPath, filepath.Ext(originalPath))
	return base + convertedSuffix + ".pdf"
}

// BookConverter converts EPUBs to PDFs.
type BookConverter struct{}

func NewBookConverter() *BookConverter {
	return &BookConverter{}
}

// Convert extracts the text of the EPUB at originalPath and lays it out as
// a PDF at the deterministic sibling path, which it returns. Converting the
// same source twice overwrites the same output file.
func (c *BookConverter) Convert(originalPath string) (string, error) {
	text, err := extractText(originalPath)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", conversionErr(originalPath, "no extractable text in EPUB")
	}

	pdfPath := PDFPath(originalPath)
	if err := writePDF(text, pdfPath); err != nil {
		return "", conversionErr(originalPath, "PDF layout failed: %w", err)
	}

	return pdfPath, nil
}
