package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// AuthorStore defines database operations for author lookups.
type AuthorStore interface {
	GetAll() ([]entities.Author, error)
	GetByID(id uint) (*entities.Author, error)
	FindByName(name string) (*entities.Author, error)
}

// AuthorArticleStore lists an author's publications.
type AuthorArticleStore interface {
	GetByAuthorID(authorID uint) ([]entities.Article, error)
}

type AuthorsController struct {
	store    AuthorStore
	articles AuthorArticleStore
}

func NewAuthorsController(store AuthorStore, articles AuthorArticleStore) *AuthorsController {
	return &AuthorsController{store: store, articles: articles}
}

// YearGroup is one year of an author's publication history.
type YearGroup struct {
	Year     int                `json:"year"`
	Articles []entities.Article `json:"articles"`
}

// AuthorProfile is the full publication view of one author.
type AuthorProfile struct {
	Author         entities.Author `json:"author"`
	TotalArticles  int             `json:"total_articles"`
	ArticlesByYear []YearGroup     `json:"articles_by_year"`
}

// ListAuthors returns all authors ordered by name
// GET /api/authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := ac.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetAuthorProfile returns an author with articles grouped by year
// GET /api/authors/:id
func (ac *AuthorsController) GetAuthorProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	ac.respondProfile(c, author)
}

// GetAuthorByName resolves an author by display name. Hyphens in the URL
// segment stand in for spaces ("jane-doe" resolves "jane doe"); exact
// matches win over partial ones.
// GET /api/authors/by-name/:name
func (ac *AuthorsController) GetAuthorByName(c *gin.Context) {
	slug := c.Param("name")
	name := strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
	if name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	author, err := ac.store.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "find author")
		return
	}

	ac.respondProfile(c, author)
}

// GetAuthorArticles returns an author's publications keyed by year.
// GET /api/authors/:id/articles
func (ac *AuthorsController) GetAuthorArticles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ac.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	found, err := ac.articles.GetByAuthorID(id)
	if err != nil {
		respondInternalError(c, err, "author articles")
		return
	}

	grouped := make(map[int][]entities.Article)
	for _, article := range found {
		year := article.Edition.Year
		grouped[year] = append(grouped[year], article)
	}
	c.JSON(http.StatusOK, grouped)
}

func (ac *AuthorsController) respondProfile(c *gin.Context, author *entities.Author) {
	found, err := ac.articles.GetByAuthorID(author.ID)
	if err != nil {
		respondInternalError(c, err, "author articles")
		return
	}

	// Articles arrive ordered by year descending, so grouping preserves order.
	var groups []YearGroup
	for _, article := range found {
		year := article.Edition.Year
		if len(groups) == 0 || groups[len(groups)-1].Year != year {
			groups = append(groups, YearGroup{Year: year})
		}
		groups[len(groups)-1].Articles = append(groups[len(groups)-1].Articles, article)
	}

	c.JSON(http.StatusOK, AuthorProfile{
		Author:         *author,
		TotalArticles:  len(found),
		ArticlesByYear: groups,
	})
}
