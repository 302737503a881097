package http

import (
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/articles"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/authors"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/editions"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/events"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/subscriptions"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/pdfstore"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Repositories
	Events        *events.Repository
	Editions      *editions.Repository
	Authors       *authors.Repository
	Articles      *articles.Repository
	Subscriptions *subscriptions.Repository

	// Article write path (persistence + PDF storage + notifications)
	ArticleService *services.ArticleService

	// PDF file storage (optional; PDF upload and serving are disabled when nil)
	PDFStore *pdfstore.Store

	// Application info
	Version string
}
