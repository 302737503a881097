package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

// EventStore defines database operations for event management.
type EventStore interface {
	GetAll() ([]entities.Event, error)
	GetByID(id uint) (*entities.Event, error)
	Create(event *entities.Event) error
	Update(event *entities.Event) error
	Delete(id uint) error
}

type EventsController struct {
	store EventStore
}

func NewEventsController(store EventStore) *EventsController {
	return &EventsController{store: store}
}

// ListEvents returns all events
// GET /api/events
func (ec *EventsController) ListEvents(c *gin.Context) {
	events, err := ec.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent returns one event
// GET /api/events/:id
func (ec *EventsController) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := ec.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "event")
			return
		}
		respondInternalError(c, err, "get event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent creates a new event
// POST /api/events
func (ec *EventsController) CreateEvent(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	event := &entities.Event{Name: req.Name, Description: req.Description}
	if err := ec.store.Create(event); err != nil {
		respondInternalError(c, err, "create event")
		return
	}

	respondCreated(c, event)
}

// UpdateEvent updates an existing event
// PUT /api/events/:id
func (ec *EventsController) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := ec.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "event")
			return
		}
		respondInternalError(c, err, "update event")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}

	if err := ec.store.Update(event); err != nil {
		respondInternalError(c, err, "update event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event with its editions and articles
// DELETE /api/events/:id
func (ec *EventsController) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ec.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "event")
			return
		}
		respondInternalError(c, err, "delete event")
		return
	}

	if err := ec.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete event")
		return
	}
	respondSuccess(c, "event deleted")
}
