// Package subscriptions provides database operations for notification
// subscriptions.
package subscriptions

import (
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// Repository handles all subscription database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscriptions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every subscription.
func (r *Repository) GetAll() ([]entities.Subscription, error) {
	var subs []entities.Subscription
	err := r.db.Order("id ASC").Find(&subs).Error
	return subs, err
}

// FindByEmailAndAuthor returns an existing subscription for the pair, or
// gorm.ErrRecordNotFound.
func (r *Repository) FindByEmailAndAuthor(email string, authorID uint) (*entities.Subscription, error) {
	var sub entities.Subscription
	err := r.db.Where("email = ? AND author_id = ?", email, authorID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create stores a new subscription.
func (r *Repository) Create(sub *entities.Subscription) error {
	return r.db.Create(sub).Error
}

// RecipientsForArticle collects the unique email addresses subscribed to the
// article's event, to any of its authors, or to everything (subscriptions
// with neither author nor event set).
func (r *Repository) RecipientsForArticle(eventID uint, authorIDs []uint) ([]string, error) {
	var subs []entities.Subscription

	query := r.db.Where("author_id IS NULL AND event_id IS NULL")
	if eventID > 0 {
		query = query.Or("event_id = ?", eventID)
	}
	if len(authorIDs) > 0 {
		query = query.Or("author_id IN ?", authorIDs)
	}

	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var emails []string
	for _, s := range subs {
		if s.Email == "" || seen[s.Email] {
			continue
		}
		seen[s.Email] = true
		emails = append(emails, s.Email)
	}
	return emails, nil
}
