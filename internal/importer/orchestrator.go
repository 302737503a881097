package importer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/bibtex"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// ImportedArticle carries the normalized fields of one importable entry to
// the persistence collaborator. Exactly one of PDFContent (with PDFFilename)
// or PDFURL may be set; both may be empty.
type ImportedArticle struct {
	Title       string
	Abstract    string
	Authors     []string
	EditionID   uint
	PDFURL      string
	PDFFilename string
	PDFContent  []byte
	BibTeX      string
}

// ArticleCreator persists one imported article. It may enforce its own
// validation and uniqueness rules; a rejection surfaces verbatim as the
// entry's error reason and never aborts the batch.
type ArticleCreator interface {
	CreateImported(article ImportedArticle) (*entities.Article, error)
}

// Batch is one import submission. The edition must already exist; resolving
// it is the caller's responsibility (fail fast, before parsing).
type Batch struct {
	EditionID uint
	Source    string   // raw BibTeX text (file content and pasted text are equivalent)
	Archive   *Archive // nil when no ZIP was uploaded
}

// Orchestrator drives the parse, validate, match, persist sequence for one
// batch. Entries are processed one at a time in document order so the report
// is deterministic and at most one PDF binary is in flight at a time. A new
// Orchestrator is created per request; there is no cross-request state.
type Orchestrator struct {
	parser  *bibtex.Parser
	creator ArticleCreator
}

func NewOrchestrator(creator ArticleCreator) *Orchestrator {
	return &Orchestrator{
		parser:  bibtex.NewParser(),
		creator: creator,
	}
}

// Run executes the pipeline and returns the batch report. Zero parsed
// entries is not a failure; the report simply carries all-zero counts.
func (o *Orchestrator) Run(batch Batch) *Report {
	report := &Report{BatchID: uuid.NewString()}

	entries := o.parser.Parse(batch.Source)

	var candidates []PDFCandidate
	contents := map[string][]byte{}
	if batch.Archive != nil {
		candidates = batch.Archive.Candidates
		contents = batch.Archive.Contents
		report.PDFFilesInZip = len(candidates)
	}

	// Validate every entry first so the matcher sees the full importable set.
	outcomes := make([]ValidationOutcome, 0, len(entries))
	importable := make([]bibtex.Entry, 0, len(entries))
	for _, entry := range entries {
		outcome := ValidateEntry(entry)
		outcomes = append(outcomes, outcome)
		if outcome.Verdict == VerdictImportable {
			importable = append(importable, entry)
		}
	}

	matches := MatchPDFs(importable, candidates)
	matchByKey := make(map[int]MatchResult, len(matches))
	for i, m := range matches {
		matchByKey[i] = m
	}

	next := 0
	for i, outcome := range outcomes {
		if outcome.Verdict == VerdictSkipped {
			report.Skipped = append(report.Skipped, SkippedArticle{
				Title:         displayTitle(outcome.Entry, i),
				Reason:        outcome.Reason,
				MissingFields: outcome.MissingFields,
			})
			continue
		}

		match := matchByKey[next]
		next++

		article := ImportedArticle{
			Title:     outcome.Entry.Title,
			Abstract:  outcome.Entry.Abstract,
			Authors:   outcome.Entry.Authors,
			EditionID: batch.EditionID,
			BibTeX:    outcome.Entry.Raw,
		}
		if match.MatchedFile != "" {
			article.PDFFilename = match.MatchedFile
			article.PDFContent = contents[match.MatchedFile]
		} else {
			// No file in the archive; the entry's own URL (if any) becomes
			// the PDF reference.
			article.PDFURL = outcome.Entry.URL
		}

		created, err := o.creator.CreateImported(article)
		if err != nil {
			report.Errors = append(report.Errors, ProcessingError{
				Title:  displayTitle(outcome.Entry, i),
				Reason: err.Error(),
			})
			continue
		}

		report.Created = append(report.Created, *created)
		if match.MatchedFile != "" {
			report.PDFsMatched++
		}
	}

	return report
}

// displayTitle names an entry in the report even when its title is missing.
func displayTitle(entry bibtex.Entry, index int) string {
	if entry.Title != "" {
		return entry.Title
	}
	return fmt.Sprintf("Entry #%d", index+1)
}
