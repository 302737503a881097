package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/editions"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/importer"
)

// EditionResolver resolves the edition an import batch files under.
type EditionResolver interface {
	GetByID(id uint) (*entities.Edition, error)
	GetByEventAndYear(eventName string, year int) (*entities.Edition, error)
}

// BulkImportController handles bulk BibTeX imports with optional PDF archives.
type BulkImportController struct {
	editions EditionResolver
	creator  importer.ArticleCreator
}

func NewBulkImportController(editions EditionResolver, creator importer.ArticleCreator) *BulkImportController {
	return &BulkImportController{editions: editions, creator: creator}
}

// ImportResponse is the full result of one bulk import request.
type ImportResponse struct {
	Success          bool                       `json:"success"`
	BatchID          string                     `json:"batch_id"`
	CreatedCount     int                        `json:"created_count"`
	SkippedCount     int                        `json:"skipped_count"`
	ErrorCount       int                        `json:"error_count"`
	Articles         []entities.Article         `json:"articles"`
	SkippedArticles  []importer.SkippedArticle  `json:"skipped_articles"`
	ProcessingErrors []importer.ProcessingError `json:"processing_errors"`
	PDFMatches       int                        `json:"pdf_matches"`
	Report           ImportReport               `json:"report"`
}

// ImportReport mirrors the structure shown in the import review screen.
type ImportReport struct {
	Summary ImportSummary `json:"summary"`
	Details ImportDetails `json:"details"`
}

type ImportSummary struct {
	TotalEntriesProcessed   int `json:"total_entries_processed"`
	SuccessfulImports       int `json:"successful_imports"`
	SkippedEntries          int `json:"skipped_entries"`
	ProcessingErrors        int `json:"processing_errors"`
	SuccessRate             int `json:"success_rate"`
	PDFFilesInZip           int `json:"pdf_files_in_zip"`
	PDFsSuccessfullyMatched int `json:"pdfs_successfully_matched"`
}

type ImportDetails struct {
	SkippedBreakdown      map[string]int         `json:"skipped_breakdown"`
	MostCommonSkipReasons []importer.ReasonCount `json:"most_common_skip_reasons"`
}

// Import runs one bulk import batch
// POST /api/articles/bulk-import
func (bc *BulkImportController) Import(c *gin.Context) {
	source, ok := bc.readBibTeXSource(c)
	if !ok {
		return
	}

	edition, ok := bc.resolveEdition(c)
	if !ok {
		return
	}

	archive, ok := bc.readArchive(c)
	if !ok {
		return
	}

	batch := importer.Batch{
		EditionID: edition.ID,
		Source:    source,
		Archive:   archive,
	}

	report := importer.NewOrchestrator(bc.creator).Run(batch)
	c.JSON(201, buildImportResponse(report))
}

// readBibTeXSource prefers an uploaded file over the pasted text field.
func (bc *BulkImportController) readBibTeXSource(c *gin.Context) (string, bool) {
	if file, err := c.FormFile("bibtex_file"); err == nil {
		content, err := readUpload(file)
		if err != nil {
			respondBadRequest(c, "unreadable BibTeX file")
			return "", false
		}
		return string(content), true
	}

	if content := c.PostForm("bibtex_content"); content != "" {
		return content, true
	}

	respondBadRequest(c, "No BibTeX content provided")
	return "", false
}

func (bc *BulkImportController) resolveEdition(c *gin.Context) (*entities.Edition, bool) {
	if idStr := c.PostForm("edition_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			respondBadRequest(c, "invalid edition_id")
			return nil, false
		}
		edition, err := bc.editions.GetByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondBadRequest(c, "Selected edition not found")
				return nil, false
			}
			respondInternalError(c, err, "resolve edition")
			return nil, false
		}
		return edition, true
	}

	eventName := c.PostForm("event_name")
	yearStr := c.PostForm("year")
	if eventName == "" || yearStr == "" {
		respondBadRequest(c, "edition_id or (event_name and year) are required")
		return nil, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		respondBadRequest(c, "invalid year")
		return nil, false
	}

	edition, err := bc.editions.GetByEventAndYear(eventName, year)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondBadRequest(c, fmt.Sprintf("No edition found for %s %d. Please create the edition first.", eventName, year))
		case errors.Is(err, editions.ErrAmbiguousEdition):
			respondBadRequest(c, fmt.Sprintf("Multiple editions found for %s %d. Please specify edition_id.", eventName, year))
		default:
			respondInternalError(c, err, "resolve edition")
		}
		return nil, false
	}
	return edition, true
}

// readArchive extracts PDF candidates from an optional uploaded ZIP. A
// missing file is fine; an unreadable one fails the whole request.
func (bc *BulkImportController) readArchive(c *gin.Context) (*importer.Archive, bool) {
	file, err := c.FormFile("pdf_zip")
	if err != nil {
		return nil, true
	}

	content, err := readUpload(file)
	if err != nil {
		respondBadRequest(c, "unreadable ZIP archive")
		return nil, false
	}

	archive, err := importer.ExtractPDFs(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		respondBadRequest(c, "unreadable ZIP archive")
		return nil, false
	}
	return archive, true
}

func buildImportResponse(report *importer.Report) ImportResponse {
	resp := ImportResponse{
		Success:          true,
		BatchID:          report.BatchID,
		CreatedCount:     len(report.Created),
		SkippedCount:     len(report.Skipped),
		ErrorCount:       len(report.Errors),
		Articles:         report.Created,
		SkippedArticles:  report.Skipped,
		ProcessingErrors: report.Errors,
		PDFMatches:       report.PDFsMatched,
		Report: ImportReport{
			Summary: ImportSummary{
				TotalEntriesProcessed:   report.TotalProcessed(),
				SuccessfulImports:       len(report.Created),
				SkippedEntries:          len(report.Skipped),
				ProcessingErrors:        len(report.Errors),
				SuccessRate:             report.SuccessRate(),
				PDFFilesInZip:           report.PDFFilesInZip,
				PDFsSuccessfullyMatched: report.PDFsMatched,
			},
			Details: ImportDetails{
				SkippedBreakdown:      report.SkippedBreakdown(),
				MostCommonSkipReasons: report.TopSkipReasons(),
			},
		},
	}

	// Empty slices serialize as [] rather than null.
	if resp.Articles == nil {
		resp.Articles = []entities.Article{}
	}
	if resp.SkippedArticles == nil {
		resp.SkippedArticles = []importer.SkippedArticle{}
	}
	if resp.ProcessingErrors == nil {
		resp.ProcessingErrors = []importer.ProcessingError{}
	}
	if resp.Report.Details.MostCommonSkipReasons == nil {
		resp.Report.Details.MostCommonSkipReasons = []importer.ReasonCount{}
	}
	return resp
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	opened, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer opened.Close()
	return io.ReadAll(opened)
}
