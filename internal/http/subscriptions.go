package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// SubscriptionStore defines database operations for subscription management.
type SubscriptionStore interface {
	GetAll() ([]entities.Subscription, error)
	FindByEmailAndAuthor(email string, authorID uint) (*entities.Subscription, error)
	Create(sub *entities.Subscription) error
}

// AuthorResolver resolves subscription targets given by name.
type AuthorResolver interface {
	GetByID(id uint) (*entities.Author, error)
	GetOrCreateByName(name string) (*entities.Author, error)
}

type SubscriptionsController struct {
	store   SubscriptionStore
	authors AuthorResolver
}

func NewSubscriptionsController(store SubscriptionStore, authors AuthorResolver) *SubscriptionsController {
	return &SubscriptionsController{store: store, authors: authors}
}

// ListSubscriptions returns all subscriptions
// GET /api/subscriptions
func (sc *SubscriptionsController) ListSubscriptions(c *gin.Context) {
	subs, err := sc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list subscriptions")
		return
	}
	c.JSON(http.StatusOK, subs)
}

// CreateSubscription registers an email for notifications. The target may be
// an author (by ID, or by name with get-or-create), an event, or nothing at
// all, which subscribes the address to every new article. Subscribing twice
// to the same author is idempotent and returns the existing record.
// POST /api/subscriptions
func (sc *SubscriptionsController) CreateSubscription(c *gin.Context) {
	var req struct {
		Email      string `json:"email"`
		AuthorID   *uint  `json:"author_id"`
		AuthorName string `json:"author_name"`
		EventID    *uint  `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondBadRequest(c, "a valid email is required")
		return
	}

	authorID := req.AuthorID
	if authorID == nil && req.AuthorName != "" {
		// Subscribing by name registers interest even before the author
		// has published anything.
		author, err := sc.authors.GetOrCreateByName(req.AuthorName)
		if err != nil {
			respondInternalError(c, err, "resolve author")
			return
		}
		authorID = &author.ID
	}

	if authorID != nil {
		if _, err := sc.authors.GetByID(*authorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondNotFound(c, "author")
				return
			}
			respondInternalError(c, err, "resolve author")
			return
		}

		existing, err := sc.store.FindByEmailAndAuthor(req.Email, *authorID)
		if err == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondInternalError(c, err, "check subscription")
			return
		}
	}

	sub := &entities.Subscription{
		Email:    req.Email,
		AuthorID: authorID,
		EventID:  req.EventID,
	}
	if err := sc.store.Create(sub); err != nil {
		respondInternalError(c, err, "create subscription")
		return
	}
	respondCreated(c, sub)
}
