// Package pdfstore handles local storage of uploaded article PDFs.
package pdfstore

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// Store writes article PDFs under a single directory. Files are written
// atomically (temp file plus rename) so a crashed upload never leaves a
// half-written PDF behind.
type Store struct {
	dir string
}

// NewStore creates a PDF store at the specified directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create pdf dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save stores the PDF content for an article and returns the stored
// filename, relative to the store directory.
func (s *Store) Save(articleID uint, content []byte) (string, error) {
	filename := s.pdfFilename(articleID, content)
	finalPath := filepath.Join(s.dir, filename)

	tmpFile, err := os.CreateTemp(s.dir, "pdf_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return "", err
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", err
	}
	return filename, nil
}

// Path resolves a stored filename to its absolute location on disk.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Remove deletes every stored PDF belonging to an article.
func (s *Store) Remove(articleID uint) error {
	pattern := filepath.Join(s.dir, fmt.Sprintf("article_%d_*", articleID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// pdfFilename generates a unique filename based on article ID and a content hash.
func (s *Store) pdfFilename(articleID uint, content []byte) string {
	hash := sha256.Sum256(content)
	return fmt.Sprintf("article_%d_%x.pdf", articleID, hash[:8])
}

// Dir returns the storage directory path.
func (s *Store) Dir() string {
	return s.dir
}
