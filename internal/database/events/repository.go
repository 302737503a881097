// Package events provides database operations for event management.
package events

import (
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// Repository handles all event database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new events repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every event ordered by name.
func (r *Repository) GetAll() ([]entities.Event, error) {
	var events []entities.Event
	err := r.db.Order("name ASC").Find(&events).Error
	return events, err
}

// GetByID retrieves one event.
func (r *Repository) GetByID(id uint) (*entities.Event, error) {
	var event entities.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Create stores a new event.
func (r *Repository) Create(event *entities.Event) error {
	return r.db.Create(event).Error
}

// GetOrCreateByName finds an event by exact name or creates it.
func (r *Repository) GetOrCreateByName(name string) (*entities.Event, error) {
	var event entities.Event
	err := r.db.Where("name = ?", name).First(&event).Error
	if err == nil {
		return &event, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	event = entities.Event{Name: name}
	if err := r.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update persists changes to an existing event.
func (r *Repository) Update(event *entities.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event together with its editions and their articles.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var editionIDs []uint
		if err := tx.Model(&entities.Edition{}).Where("event_id = ?", id).Pluck("id", &editionIDs).Error; err != nil {
			return err
		}
		if len(editionIDs) > 0 {
			if err := tx.Where("edition_id IN ?", editionIDs).Delete(&entities.Article{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id = ?", id).Delete(&entities.Edition{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entities.Event{}, id).Error
	})
}
