package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	eventsController := NewEventsController(cfg.Events)
	editionsController := NewEditionsController(cfg.Editions, cfg.Events)
	articlesController := NewArticlesController(cfg.Articles, cfg.ArticleService, cfg.PDFStore)
	authorsController := NewAuthorsController(cfg.Authors, cfg.Articles)
	subscriptionsController := NewSubscriptionsController(cfg.Subscriptions, cfg.Authors)
	importController := NewBulkImportController(cfg.Editions, cfg.ArticleService)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Event endpoints
	router.GET("/api/events", eventsController.ListEvents)
	router.POST("/api/events", eventsController.CreateEvent)
	router.GET("/api/events/:id", eventsController.GetEvent)
	router.PUT("/api/events/:id", eventsController.UpdateEvent)
	router.DELETE("/api/events/:id", eventsController.DeleteEvent)

	// Edition endpoints
	router.GET("/api/editions", editionsController.ListEditions)
	router.POST("/api/editions", editionsController.CreateEdition)
	router.GET("/api/editions/:id", editionsController.GetEdition)
	router.PUT("/api/editions/:id", editionsController.UpdateEdition)
	router.DELETE("/api/editions/:id", editionsController.DeleteEdition)

	// Article endpoints
	router.GET("/api/articles", articlesController.SearchArticles)
	router.POST("/api/articles", articlesController.CreateArticle)
	router.GET("/api/articles/:id", articlesController.GetArticle)
	router.PUT("/api/articles/:id", articlesController.UpdateArticle)
	router.DELETE("/api/articles/:id", articlesController.DeleteArticle)
	router.GET("/api/articles/:id/pdf", articlesController.ServePDF)
	router.POST("/api/articles/:id/pdf", articlesController.UploadPDF)

	// Bulk import endpoint
	router.POST("/api/articles/bulk-import", importController.Import)

	// Author endpoints
	router.GET("/api/authors", authorsController.ListAuthors)
	router.GET("/api/authors/:id", authorsController.GetAuthorProfile)
	router.GET("/api/authors/:id/articles", authorsController.GetAuthorArticles)
	router.GET("/api/authors/by-name/:name", authorsController.GetAuthorByName)

	// Subscription endpoints
	router.GET("/api/subscriptions", subscriptionsController.ListSubscriptions)
	router.POST("/api/subscriptions", subscriptionsController.CreateSubscription)

	return router
}
