// Package authors provides database operations for author management.
//
// Authors are deduplicated by name: every code path that attaches an author
// to an article or subscription goes through GetOrCreateByName.
package authors

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every author ordered by name.
func (r *Repository) GetAll() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

// GetByID retrieves one author.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetOrCreateByName finds an author by name (trimmed) or creates one.
func (r *Repository) GetOrCreateByName(name string) (*entities.Author, error) {
	name = strings.TrimSpace(name)

	var author entities.Author
	err := r.db.Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	author = entities.Author{Name: name}
	if err := r.db.Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// FindByName resolves a display name to an author: exact match first
// (case-insensitive), then the first partial match. Returns
// gorm.ErrRecordNotFound when nothing matches.
func (r *Repository) FindByName(name string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Where("name LIKE ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// Partial match fallback; first hit wins.
	err = r.db.Where("name LIKE ?", "%"+name+"%").Order("id ASC").First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// DeleteOrphans removes authors that have no articles and no subscriptions.
// Returns the number of deleted rows.
func (r *Repository) DeleteOrphans() (int64, error) {
	result := r.db.Where(
		"id NOT IN (SELECT author_id FROM article_authors)"+
			" AND id NOT IN (SELECT author_id FROM subscriptions WHERE author_id IS NOT NULL)",
	).Delete(&entities.Author{})
	return result.RowsAffected, result.Error
}
