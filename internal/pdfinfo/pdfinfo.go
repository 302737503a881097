// Package pdfinfo extracts lightweight metadata from PDF documents.
package pdfinfo

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// PageCount returns the number of pages in a PDF document. Extraction is
// best effort: unreadable or malformed documents yield 0 rather than an
// error, since page counts are advisory metadata.
func PageCount(content []byte) int {
	if len(content) == 0 {
		return 0
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0
	}

	pages := reader.NumPage()
	if pages < 0 {
		return 0
	}
	return pages
}
