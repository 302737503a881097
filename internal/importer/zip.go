package importer

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Archive holds the PDFs extracted from an uploaded ZIP: the candidate list
// in archive order (for deterministic tie-breaking) and the file contents
// keyed by basename.
type Archive struct {
	Candidates []PDFCandidate
	Contents   map[string][]byte
}

// ExtractPDFs reads a ZIP archive and returns its PDF files. Non-PDF entries
// and directories are ignored. An unreadable archive is a request-level
// error: the caller must reject the whole import.
func ExtractPDFs(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("unreadable ZIP archive: %w", err)
	}

	archive := &Archive{Contents: map[string][]byte{}}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(f.Name), ".pdf") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s from ZIP: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s from ZIP: %w", f.Name, err)
		}

		name := filepath.Base(f.Name)
		if _, seen := archive.Contents[name]; seen {
			// Same basename in two directories: first one wins.
			continue
		}
		archive.Candidates = append(archive.Candidates, NewPDFCandidate(name))
		archive.Contents[name] = content
	}

	return archive, nil
}
