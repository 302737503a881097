package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/database/articles"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/pdfstore"
	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/services"
)

// ArticleStore provides catalogue access and in-place updates. Creation and
// deletion go through ArticleService so PDF storage and notifications stay
// consistent.
type ArticleStore interface {
	Search(filters articles.Filters) ([]entities.Article, error)
	GetByID(id uint) (*entities.Article, error)
	Update(article *entities.Article, authorNames []string) error
}

type ArticlesController struct {
	store   ArticleStore
	service *services.ArticleService
	pdfs    *pdfstore.Store
}

func NewArticlesController(store ArticleStore, service *services.ArticleService, pdfs *pdfstore.Store) *ArticlesController {
	return &ArticlesController{store: store, service: service, pdfs: pdfs}
}

// SearchArticles returns articles matching the query filters
// GET /api/articles?title=...&author=...&event=...
func (ac *ArticlesController) SearchArticles(c *gin.Context) {
	filters := articles.Filters{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Event:  c.Query("event"),
	}

	found, err := ac.store.Search(filters)
	if err != nil {
		respondInternalError(c, err, "search articles")
		return
	}
	c.JSON(http.StatusOK, found)
}

// GetArticle returns one article with edition, event and authors
// GET /api/articles/:id
func (ac *ArticlesController) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	article, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "get article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateArticle creates a new article. Accepts either JSON or multipart form
// data; the multipart form may carry a "pdf" file that is stored locally.
// POST /api/articles
func (ac *ArticlesController) CreateArticle(c *gin.Context) {
	var (
		article    *entities.Article
		authors    []string
		pdfContent []byte
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		editionID, err := strconv.ParseUint(c.PostForm("edition_id"), 10, 32)
		if err != nil {
			respondBadRequest(c, "edition_id is required")
			return
		}

		article = &entities.Article{
			Title:     strings.TrimSpace(c.PostForm("title")),
			Abstract:  c.PostForm("abstract"),
			PDFURL:    c.PostForm("pdf_url"),
			EditionID: uint(editionID),
		}
		authors = parseAuthorNames(c.PostForm("authors"))

		if file, err := c.FormFile("pdf"); err == nil {
			opened, err := file.Open()
			if err != nil {
				respondBadRequest(c, "unreadable pdf upload")
				return
			}
			defer opened.Close()
			if pdfContent, err = io.ReadAll(opened); err != nil {
				respondBadRequest(c, "unreadable pdf upload")
				return
			}
		}
	} else {
		var req struct {
			Title     string   `json:"title"`
			Abstract  string   `json:"abstract"`
			EditionID uint     `json:"edition_id"`
			PDFURL    string   `json:"pdf_url"`
			Authors   []string `json:"authors"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		article = &entities.Article{
			Title:     strings.TrimSpace(req.Title),
			Abstract:  req.Abstract,
			PDFURL:    req.PDFURL,
			EditionID: req.EditionID,
		}
		authors = req.Authors
	}

	if article.Title == "" {
		respondBadRequest(c, "title is required")
		return
	}
	if article.EditionID == 0 {
		respondBadRequest(c, "edition_id is required")
		return
	}

	created, err := ac.service.Create(article, authors, pdfContent)
	if err != nil {
		respondInternalError(c, err, "create article")
		return
	}
	respondCreated(c, created)
}

// UpdateArticle updates article fields. When "authors" is present the author
// set is replaced wholesale; when absent it is left untouched.
// PUT /api/articles/:id
func (ac *ArticlesController) UpdateArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	article, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "update article")
		return
	}

	var req struct {
		Title     *string   `json:"title"`
		Abstract  *string   `json:"abstract"`
		EditionID *uint     `json:"edition_id"`
		PDFURL    *string   `json:"pdf_url"`
		Authors   *[]string `json:"authors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			respondBadRequest(c, "title cannot be empty")
			return
		}
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Abstract != nil {
		article.Abstract = *req.Abstract
	}
	if req.EditionID != nil {
		article.EditionID = *req.EditionID
	}
	if req.PDFURL != nil {
		article.PDFURL = *req.PDFURL
	}

	var authorNames []string
	if req.Authors != nil {
		authorNames = *req.Authors
	}

	if err := ac.store.Update(article, authorNames); err != nil {
		respondInternalError(c, err, "update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle removes an article and its stored PDFs
// DELETE /api/articles/:id
func (ac *ArticlesController) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "delete article")
		return
	}

	if err := ac.service.Delete(id); err != nil {
		respondInternalError(c, err, "delete article")
		return
	}
	respondSuccess(c, "article deleted")
}

// UploadPDF attaches a PDF to an existing article
// POST /api/articles/:id/pdf
func (ac *ArticlesController) UploadPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("pdf")
	if err != nil {
		respondBadRequest(c, "pdf file is required")
		return
	}
	opened, err := file.Open()
	if err != nil {
		respondBadRequest(c, "unreadable pdf upload")
		return
	}
	defer opened.Close()
	content, err := io.ReadAll(opened)
	if err != nil {
		respondBadRequest(c, "unreadable pdf upload")
		return
	}

	article, err := ac.service.AttachPDF(id, content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "upload pdf")
		return
	}
	c.JSON(http.StatusOK, article)
}

// ServePDF streams the locally stored PDF for an article
// GET /api/articles/:id/pdf
func (ac *ArticlesController) ServePDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	article, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "article")
			return
		}
		respondInternalError(c, err, "serve pdf")
		return
	}

	if ac.pdfs == nil || article.PDFFile == "" {
		respondNotFound(c, "pdf")
		return
	}

	path := ac.pdfs.Path(article.PDFFile)
	if _, err := os.Stat(path); err != nil {
		respondNotFound(c, "pdf")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
