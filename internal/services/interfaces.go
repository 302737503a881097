package services

import "github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"

// ArticleStore handles article persistence with author attachment.
type ArticleStore interface {
	GetByID(id uint) (*entities.Article, error)
	Create(article *entities.Article, authorNames []string) error
	SetPDFFile(id uint, path string, pageCount int) error
	Delete(id uint) error
}

// PDFStore persists uploaded article PDFs on disk.
type PDFStore interface {
	Save(articleID uint, content []byte) (string, error)
	Remove(articleID uint) error
}

// TaskEnqueuer schedules a subscriber notification for a new article.
// Nil-able: when no task queue is configured, notifications are skipped.
type TaskEnqueuer interface {
	EnqueueNotification(articleID uint) error
}
