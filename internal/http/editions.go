package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// EditionStore defines database operations for edition management.
type EditionStore interface {
	GetAll() ([]entities.Edition, error)
	GetByID(id uint) (*entities.Edition, error)
	Create(edition *entities.Edition) error
	Update(edition *entities.Edition) error
	Delete(id uint) error
}

// EventResolver resolves the parent event when an edition is created by
// event name instead of ID.
type EventResolver interface {
	GetByID(id uint) (*entities.Event, error)
	GetOrCreateByName(name string) (*entities.Event, error)
}

type EditionsController struct {
	store  EditionStore
	events EventResolver
}

func NewEditionsController(store EditionStore, events EventResolver) *EditionsController {
	return &EditionsController{store: store, events: events}
}

type editionRequest struct {
	EventID   uint       `json:"event_id"`
	EventName string     `json:"event_name"`
	Year      int        `json:"year"`
	Location  string     `json:"location"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ListEditions returns all editions, most recent year first
// GET /api/editions
func (ec *EditionsController) ListEditions(c *gin.Context) {
	editions, err := ec.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list editions")
		return
	}
	c.JSON(http.StatusOK, editions)
}

// GetEdition returns one edition
// GET /api/editions/:id
func (ec *EditionsController) GetEdition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	edition, err := ec.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "edition")
			return
		}
		respondInternalError(c, err, "get edition")
		return
	}
	c.JSON(http.StatusOK, edition)
}

// CreateEdition creates a new edition. The parent event is given either as
// event_id or as event_name, which is created on first use.
// POST /api/editions
func (ec *EditionsController) CreateEdition(c *gin.Context) {
	var req editionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Year == 0 {
		respondBadRequest(c, "year is required")
		return
	}

	eventID := req.EventID
	switch {
	case eventID != 0:
		if _, err := ec.events.GetByID(eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondNotFound(c, "event")
				return
			}
			respondInternalError(c, err, "resolve event")
			return
		}
	case req.EventName != "":
		event, err := ec.events.GetOrCreateByName(req.EventName)
		if err != nil {
			respondInternalError(c, err, "resolve event")
			return
		}
		eventID = event.ID
	default:
		respondBadRequest(c, "event_id or event_name is required")
		return
	}

	edition := &entities.Edition{
		EventID:   eventID,
		Year:      req.Year,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := ec.store.Create(edition); err != nil {
		respondInternalError(c, err, "create edition")
		return
	}

	respondCreated(c, edition)
}

// UpdateEdition updates an existing edition
// PUT /api/editions/:id
func (ec *EditionsController) UpdateEdition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	edition, err := ec.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "edition")
			return
		}
		respondInternalError(c, err, "update edition")
		return
	}

	var req struct {
		Year      *int       `json:"year"`
		Location  *string    `json:"location"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Year != nil {
		edition.Year = *req.Year
	}
	if req.Location != nil {
		edition.Location = *req.Location
	}
	if req.StartDate != nil {
		edition.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		edition.EndDate = req.EndDate
	}

	if err := ec.store.Update(edition); err != nil {
		respondInternalError(c, err, "update edition")
		return
	}
	c.JSON(http.StatusOK, edition)
}

// DeleteEdition removes an edition and its articles
// DELETE /api/editions/:id
func (ec *EditionsController) DeleteEdition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ec.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "edition")
			return
		}
		respondInternalError(c, err, "delete edition")
		return
	}

	if err := ec.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete edition")
		return
	}
	respondSuccess(c, "edition deleted")
}
