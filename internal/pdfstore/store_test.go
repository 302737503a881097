package pdfstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewStore(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "pdfs")

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if store.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, store.Dir())
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("storage directory was not created")
	}
}

func TestSaveAndPath(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	content := []byte("%PDF-1.4 fake content")
	filename, err := store.Save(42, content)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(filename, "article_42_") || !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("unexpected filename %q", filename)
	}

	stored, err := os.ReadFile(store.Path(filename))
	if err != nil {
		t.Fatalf("reading stored file failed: %v", err)
	}
	if string(stored) != string(content) {
		t.Error("stored content does not match input")
	}
}

func TestSaveIsIdempotentForSameContent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	first, err := store.Save(1, []byte("same"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := store.Save(1, []byte("same"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if first != second {
		t.Errorf("expected same filename for same content, got %q and %q", first, second)
	}
}

func TestRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	filename, err := store.Save(7, []byte("to be removed"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	keep, err := store.Save(8, []byte("kept"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Remove(7); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := os.Stat(store.Path(filename)); !os.IsNotExist(err) {
		t.Error("removed file still exists")
	}
	if _, err := os.Stat(store.Path(keep)); err != nil {
		t.Error("unrelated file was removed")
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Remove(999); err != nil {
		t.Errorf("Remove of absent article failed: %v", err)
	}
}
