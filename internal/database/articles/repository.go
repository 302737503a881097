// Package articles provides database operations for article management,
// including the filtered search backing the public catalogue.
package articles

import (
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// Filters narrows a search. Empty fields are ignored.
type Filters struct {
	Title  string // substring match on the article title
	Author string // whole-word match on any author name
	Event  string // substring match on the event name
}

// Repository handles all article database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new articles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search returns articles matching the filters, with edition, event and
// authors preloaded. Author filtering matches the search term as complete
// words inside author names (so "Ana" does not match "Mariana").
func (r *Repository) Search(filters Filters) ([]entities.Article, error) {
	query := r.db.Model(&entities.Article{}).
		Preload("Edition.Event").
		Preload("Authors").
		Distinct("articles.*")

	if filters.Title != "" {
		query = query.Where("articles.title LIKE ?", "%"+filters.Title+"%")
	}
	if filters.Event != "" {
		query = query.
			Joins("JOIN editions ON editions.id = articles.edition_id").
			Joins("JOIN events ON events.id = editions.event_id").
			Where("events.name LIKE ?", "%"+filters.Event+"%")
	}
	if filters.Author != "" {
		// Coarse SQL filter; the word-boundary check happens below because
		// SQLite has no REGEXP support out of the box.
		query = query.
			Joins("JOIN article_authors ON article_authors.article_id = articles.id").
			Joins("JOIN authors ON authors.id = article_authors.author_id").
			Where("authors.name LIKE ?", "%"+strings.TrimSpace(filters.Author)+"%")
	}

	var found []entities.Article
	if err := query.Order("articles.id ASC").Find(&found).Error; err != nil {
		return nil, err
	}

	if filters.Author == "" {
		return found, nil
	}

	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(filters.Author)) + `\b`)
	if err != nil {
		return nil, err
	}

	matched := make([]entities.Article, 0, len(found))
	for _, article := range found {
		for _, author := range article.Authors {
			if pattern.MatchString(author.Name) {
				matched = append(matched, article)
				break
			}
		}
	}
	return matched, nil
}

// GetByID retrieves one article with all relations preloaded.
func (r *Repository) GetByID(id uint) (*entities.Article, error) {
	var article entities.Article
	err := r.db.Preload("Edition.Event").Preload("Authors").First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Create stores a new article and attaches its authors by name,
// get-or-create semantics, inside one transaction.
func (r *Repository) Create(article *entities.Article, authorNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return attachAuthors(tx, article, authorNames)
	})
	if err != nil {
		return err
	}
	return r.reload(article)
}

// Update persists field changes. When authorNames is non-nil the author set
// is replaced wholesale (matching the PUT semantics of the API).
func (r *Repository) Update(article *entities.Article, authorNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if authorNames == nil {
			return nil
		}
		if err := tx.Model(article).Association("Authors").Clear(); err != nil {
			return err
		}
		return attachAuthors(tx, article, authorNames)
	})
	if err != nil {
		return err
	}
	return r.reload(article)
}

// SetPDFFile records the stored file path and page count for an article.
func (r *Repository) SetPDFFile(id uint, path string, pageCount int) error {
	return r.db.Model(&entities.Article{}).Where("id = ?", id).
		Updates(map[string]any{"pdf_file": path, "page_count": pageCount}).Error
}

// Delete removes an article and its author associations.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		article := entities.Article{ID: id}
		if err := tx.Model(&article).Association("Authors").Clear(); err != nil {
			return err
		}
		return tx.Delete(&entities.Article{}, id).Error
	})
}

// GetByAuthorID returns an author's articles ordered by edition year
// descending, relations preloaded.
func (r *Repository) GetByAuthorID(authorID uint) ([]entities.Article, error) {
	var found []entities.Article
	err := r.db.Preload("Edition.Event").Preload("Authors").
		Joins("JOIN article_authors ON article_authors.article_id = articles.id").
		Joins("JOIN editions ON editions.id = articles.edition_id").
		Where("article_authors.author_id = ?", authorID).
		Order("editions.year DESC, articles.id ASC").
		Find(&found).Error
	return found, err
}

func attachAuthors(tx *gorm.DB, article *entities.Article, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var author entities.Author
		err := tx.Where("name = ?", name).First(&author).Error
		if err == gorm.ErrRecordNotFound {
			author = entities.Author{Name: name}
			err = tx.Create(&author).Error
		}
		if err != nil {
			return err
		}
		if err := tx.Model(article).Association("Authors").Append(&author); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) reload(article *entities.Article) error {
	return r.db.Preload("Edition.Event").Preload("Authors").First(article, article.ID).Error
}
