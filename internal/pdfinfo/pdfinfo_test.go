package pdfinfo

import "testing"

func TestPageCountEmptyContent(t *testing.T) {
	if got := PageCount(nil); got != 0 {
		t.Errorf("expected 0 pages for empty content, got %d", got)
	}
}

func TestPageCountMalformedContent(t *testing.T) {
	if got := PageCount([]byte("not a pdf at all")); got != 0 {
		t.Errorf("expected 0 pages for malformed content, got %d", got)
	}
}

func TestPageCountTruncatedHeader(t *testing.T) {
	if got := PageCount([]byte("%PDF-1.4")); got != 0 {
		t.Errorf("expected 0 pages for truncated document, got %d", got)
	}
}
