// Package editions provides database operations for edition management.
package editions

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// ErrAmbiguousEdition is returned when an (event, year) pair resolves to
// more than one edition and the caller must specify an edition ID instead.
var ErrAmbiguousEdition = errors.New("multiple editions found for event and year")

// Repository handles all edition database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new editions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every edition with its event preloaded.
func (r *Repository) GetAll() ([]entities.Edition, error) {
	var editions []entities.Edition
	err := r.db.Preload("Event").Order("year DESC").Find(&editions).Error
	return editions, err
}

// GetByID retrieves one edition with its event preloaded.
func (r *Repository) GetByID(id uint) (*entities.Edition, error) {
	var edition entities.Edition
	if err := r.db.Preload("Event").First(&edition, id).Error; err != nil {
		return nil, err
	}
	return &edition, nil
}

// GetByEventAndYear resolves an (event name, year) pair to a single edition.
// Returns gorm.ErrRecordNotFound when no edition exists and
// ErrAmbiguousEdition when the pair is not unique.
func (r *Repository) GetByEventAndYear(eventName string, year int) (*entities.Edition, error) {
	var editions []entities.Edition
	err := r.db.Preload("Event").
		Joins("JOIN events ON events.id = editions.event_id").
		Where("events.name = ? AND editions.year = ?", eventName, year).
		Find(&editions).Error
	if err != nil {
		return nil, err
	}

	switch len(editions) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &editions[0], nil
	default:
		return nil, ErrAmbiguousEdition
	}
}

// Create stores a new edition.
func (r *Repository) Create(edition *entities.Edition) error {
	if err := r.db.Create(edition).Error; err != nil {
		return err
	}
	return r.db.Preload("Event").First(edition, edition.ID).Error
}

// Update persists changes to an existing edition.
func (r *Repository) Update(edition *entities.Edition) error {
	if err := r.db.Save(edition).Error; err != nil {
		return err
	}
	return r.db.Preload("Event").First(edition, edition.ID).Error
}

// Delete removes an edition and the articles filed under it.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("edition_id = ?", id).Delete(&entities.Article{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Edition{}, id).Error
	})
}
