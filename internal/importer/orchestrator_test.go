package importer

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// fakeCreator records persisted articles and can be told to fail on
// specific titles.
type fakeCreator struct {
	created []ImportedArticle
	failOn  map[string]error
	nextID  uint
}

func newFakeCreator() *fakeCreator {
	return &fakeCreator{failOn: map[string]error{}}
}

func (f *fakeCreator) CreateImported(article ImportedArticle) (*entities.Article, error) {
	if err, ok := f.failOn[article.Title]; ok {
		return nil, err
	}
	f.created = append(f.created, article)
	f.nextID++
	return &entities.Article{
		ID:        f.nextID,
		Title:     article.Title,
		Abstract:  article.Abstract,
		PDFURL:    article.PDFURL,
		EditionID: article.EditionID,
		BibTeX:    article.BibTeX,
	}, nil
}

func buildZip(t *testing.T, files map[string][]byte) *Archive {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	archive, err := ExtractPDFs(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return archive
}

func TestOrchestrator_SingleEntryNoZip(t *testing.T) {
	creator := newFakeCreator()
	orch := NewOrchestrator(creator)

	report := orch.Run(Batch{
		EditionID: 1,
		Source:    `@article{a1, title={Foo}, author={Jane Doe}}`,
	})

	assert.Equal(t, 1, len(report.Created))
	assert.Equal(t, 0, len(report.Skipped))
	assert.Equal(t, 0, len(report.Errors))
	assert.Equal(t, 0, report.PDFsMatched)
	assert.Equal(t, 0, report.PDFFilesInZip)
	assert.NotEmpty(t, report.BatchID)

	require.Len(t, creator.created, 1)
	assert.Equal(t, "Foo", creator.created[0].Title)
	assert.Equal(t, []string{"Jane Doe"}, creator.created[0].Authors)
	assert.Equal(t, uint(1), creator.created[0].EditionID)
}

func TestOrchestrator_EmptySource(t *testing.T) {
	orch := NewOrchestrator(newFakeCreator())

	report := orch.Run(Batch{EditionID: 1, Source: ""})

	assert.Equal(t, 0, report.TotalProcessed())
	assert.Equal(t, 0, report.SuccessRate())
}

func TestOrchestrator_SkipsEntryMissingTitle(t *testing.T) {
	orch := NewOrchestrator(newFakeCreator())

	report := orch.Run(Batch{
		EditionID: 1,
		Source: `
@article{a1, title={Good Paper}, author={Jane Doe}}
@article{a2, author={John Roe}}
`,
	})

	assert.Equal(t, 1, len(report.Created))
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, []string{"title"}, report.Skipped[0].MissingFields)
	assert.Equal(t, "Entry #2", report.Skipped[0].Title)
}

func TestOrchestrator_MatchesPDFFromZip(t *testing.T) {
	creator := newFakeCreator()
	orch := NewOrchestrator(creator)
	archive := buildZip(t, map[string][]byte{
		"foo-bar.pdf": []byte("%PDF-1.4 fake"),
	})

	report := orch.Run(Batch{
		EditionID: 1,
		Source:    `@article{a1, title={Foo Bar: A Study}, author={Jane Doe}, url={https://example.org/a1}}`,
		Archive:   archive,
	})

	assert.Equal(t, 1, len(report.Created))
	assert.Equal(t, 1, report.PDFsMatched)
	assert.Equal(t, 1, report.PDFFilesInZip)

	require.Len(t, creator.created, 1)
	assert.Equal(t, "foo-bar.pdf", creator.created[0].PDFFilename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), creator.created[0].PDFContent)
	// The matched file wins over the entry's own URL.
	assert.Empty(t, creator.created[0].PDFURL)
}

func TestOrchestrator_URLFallbackWhenNoMatch(t *testing.T) {
	creator := newFakeCreator()
	orch := NewOrchestrator(creator)

	report := orch.Run(Batch{
		EditionID: 1,
		Source:    `@article{a1, title={Foo}, author={Jane Doe}, url={https://example.org/foo.pdf}}`,
	})

	assert.Equal(t, 0, report.PDFsMatched)
	require.Len(t, creator.created, 1)
	assert.Equal(t, "https://example.org/foo.pdf", creator.created[0].PDFURL)
	assert.Empty(t, creator.created[0].PDFFilename)
}

func TestOrchestrator_PersistenceErrorDoesNotAbortBatch(t *testing.T) {
	creator := newFakeCreator()
	creator.failOn["Bad Paper"] = errors.New("UNIQUE constraint failed: articles.title")
	orch := NewOrchestrator(creator)

	report := orch.Run(Batch{
		EditionID: 1,
		Source: `
@article{a1, title={Bad Paper}, author={Jane Doe}}
@article{a2, title={Good Paper}, author={John Roe}}
`,
	})

	assert.Equal(t, 1, len(report.Created))
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Bad Paper", report.Errors[0].Title)
	assert.Equal(t, "UNIQUE constraint failed: articles.title", report.Errors[0].Reason)
	assert.Equal(t, 2, report.TotalProcessed())
}

func TestOrchestrator_DuplicateEntriesBothImported(t *testing.T) {
	// Duplicate citation keys (or titles) within one document are imported
	// as separate articles; deduplication is not the pipeline's job.
	creator := newFakeCreator()
	orch := NewOrchestrator(creator)

	report := orch.Run(Batch{
		EditionID: 1,
		Source: `
@article{dup, title={Same Paper}, author={Jane Doe}}
@article{dup, title={Same Paper}, author={Jane Doe}}
`,
	})

	assert.Equal(t, 2, len(report.Created))
}

func TestOrchestrator_ReportCountsAddUp(t *testing.T) {
	creator := newFakeCreator()
	creator.failOn["Fails"] = errors.New("boom")
	orch := NewOrchestrator(creator)

	report := orch.Run(Batch{
		EditionID: 1,
		Source: `
@article{a1, title={Ok One}, author={A A}}
@article{a2, author={B B}}
@article{a3, title={Fails}, author={C C}}
@article{a4, title={Ok Two}, author={D D}}
`,
	})

	assert.Equal(t, 4, report.TotalProcessed())
	assert.Equal(t, 2, len(report.Created))
	assert.Equal(t, 1, len(report.Skipped))
	assert.Equal(t, 1, len(report.Errors))
	assert.Equal(t, 50, report.SuccessRate())
}

func TestExtractPDFs_FiltersNonPDFs(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range []string{"papers/one.pdf", "papers/readme.txt", "two.PDF"} {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	archive, err := ExtractPDFs(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	require.Len(t, archive.Candidates, 2)
	assert.Equal(t, "one.pdf", archive.Candidates[0].Filename)
	assert.Equal(t, "two.PDF", archive.Candidates[1].Filename)
	assert.Contains(t, archive.Contents, "one.pdf")
	assert.NotContains(t, archive.Contents, "readme.txt")
}

func TestExtractPDFs_UnreadableArchive(t *testing.T) {
	junk := []byte("definitely not a zip file")

	_, err := ExtractPDFs(bytes.NewReader(junk), int64(len(junk)))

	require.Error(t, err)
}
