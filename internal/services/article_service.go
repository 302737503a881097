// Package services coordinates article persistence with PDF storage and
// subscriber notification.
package services

import (
	"fmt"
	"log"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/importer"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/pdfinfo"
)

// ArticleService is the write path for articles: it persists the record,
// stores an uploaded PDF when present, and enqueues subscriber
// notifications. It also implements importer.ArticleCreator so bulk imports
// share the same behaviour as single-article creation.
type ArticleService struct {
	store    ArticleStore
	pdfs     PDFStore
	enqueuer TaskEnqueuer
}

// NewArticleService creates the service. pdfs and enqueuer may be nil, in
// which case PDF storage and notifications are skipped.
func NewArticleService(store ArticleStore, pdfs PDFStore, enqueuer TaskEnqueuer) *ArticleService {
	return &ArticleService{store: store, pdfs: pdfs, enqueuer: enqueuer}
}

// Create persists an article with its authors and optional PDF content.
func (s *ArticleService) Create(article *entities.Article, authorNames []string, pdfContent []byte) (*entities.Article, error) {
	if err := s.store.Create(article, authorNames); err != nil {
		return nil, err
	}

	if len(pdfContent) > 0 {
		if err := s.attachPDF(article, pdfContent); err != nil {
			return nil, err
		}
	}

	s.notify(article.ID)
	return article, nil
}

// AttachPDF stores PDF content for an existing article and records its
// path and page count.
func (s *ArticleService) AttachPDF(articleID uint, content []byte) (*entities.Article, error) {
	article, err := s.store.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if err := s.attachPDF(article, content); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article together with its stored PDFs.
func (s *ArticleService) Delete(articleID uint) error {
	if err := s.store.Delete(articleID); err != nil {
		return err
	}
	if s.pdfs != nil {
		if err := s.pdfs.Remove(articleID); err != nil {
			log.Printf("Failed to remove PDFs for article %d: %v", articleID, err)
		}
	}
	return nil
}

// CreateImported persists one entry produced by the bulk import pipeline.
func (s *ArticleService) CreateImported(imported importer.ImportedArticle) (*entities.Article, error) {
	article := &entities.Article{
		Title:     imported.Title,
		Abstract:  imported.Abstract,
		EditionID: imported.EditionID,
		PDFURL:    imported.PDFURL,
		BibTeX:    imported.BibTeX,
	}
	return s.Create(article, imported.Authors, imported.PDFContent)
}

func (s *ArticleService) attachPDF(article *entities.Article, content []byte) error {
	if s.pdfs == nil {
		return fmt.Errorf("pdf storage not configured")
	}

	filename, err := s.pdfs.Save(article.ID, content)
	if err != nil {
		return fmt.Errorf("store pdf for article %d: %w", article.ID, err)
	}

	pages := pdfinfo.PageCount(content)
	if err := s.store.SetPDFFile(article.ID, filename, pages); err != nil {
		return fmt.Errorf("record pdf for article %d: %w", article.ID, err)
	}

	article.PDFFile = filename
	article.PageCount = pages
	return nil
}

func (s *ArticleService) notify(articleID uint) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueNotification(articleID); err != nil {
		log.Printf("Failed to enqueue notification for article %d: %v", articleID, err)
	}
}
