// events.go implements public and admin handlers for community events.
package content

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// EventHandlers handles event endpoints
type EventHandlers struct {
	events *repositories.EventRepository
}

// NewEventHandlers creates a new EventHandlers instance
func NewEventHandlers(events *repositories.EventRepository) *EventHandlers {
	return &EventHandlers{events: events}
}

var validEventStatuses = map[string]bool{
	models.EventUpcoming:  true,
	models.EventOngoing:   true,
	models.EventCompleted: true,
	models.EventCancelled: true,
}

// eventFiltersFromQuery builds repository filters from the request's query
// string. Unknown or malformed values are ignored rather than rejected so a
// bad filter degrades to a broader listing.
func eventFiltersFromQuery(c *gin.Context, publishedOnly bool) repositories.EventFilters {
	filters := repositories.EventFilters{PublishedOnly: publishedOnly}

	if status := c.Query("status"); validEventStatuses[status] {
		filters.Status = &status
	}
	if eventType := c.Query("type"); eventType != "" {
		filters.EventType = &eventType
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filters.Year = &year
		}
	}
	return filters
}

// @Summary      List events
// @Description  List events with optional status, type, and year filters. The public route returns published events only.
// @Tags         Events
// @Produce      json
// @Param        status  query  string  false  "Filter by status (upcoming, ongoing, completed, cancelled)"
// @Param        type    query  string  false  "Filter by event type"
// @Param        year    query  int     false  "Filter by event year"
// @Success      200  {object}  map[string]interface{}  "events: []models.Event"
// @Router       /api/public/events [get]
// ListHandler lists events. The public route passes publishedOnly=true.
func (h *EventHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := h.events.List(c.Request.Context(), eventFiltersFromQuery(c, publishedOnly))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// UpcomingHandler lists the next published events, soonest first
// GET /api/public/events/upcoming
func (h *EventHandlers) UpcomingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 5
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
				limit = n
			}
		}
		events, err := h.events.Upcoming(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list upcoming events"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// GetHandler retrieves a single event. On the public route unpublished events
// are indistinguishable from missing ones.
func (h *EventHandlers) GetHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := h.events.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
			return
		}
		if event == nil || (publishedOnly && !event.IsPublished) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// EventRequest represents the create/update payload for an event
type EventRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	EventType   string          `json:"event_type" binding:"required"`
	Status      string          `json:"status"`
	EventDate   time.Time       `json:"event_date" binding:"required"`
	EndDate     *time.Time      `json:"end_date"`
	Location    string          `json:"location"`
	CoverImage  string          `json:"cover_image"`
	Gallery     json.RawMessage `json:"gallery"`
	IsPublished bool            `json:"is_published"`
}

func (req *EventRequest) apply(event *models.Event) {
	event.Title = req.Title
	event.Description = req.Description
	event.EventType = req.EventType
	event.Status = req.Status
	event.EventDate = req.EventDate
	event.EndDate = req.EndDate
	event.Location = req.Location
	event.CoverImage = req.CoverImage
	event.Gallery = req.Gallery
	event.IsPublished = req.IsPublished
}

// @Summary      Create event
// @Description  Create a new community event.
// @Tags         Events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  EventRequest  true  "Event payload"
// @Success      201  {object}  map[string]interface{}  "event: models.Event"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Router       /api/admin/events [post]
// CreateHandler creates an event
// POST /api/admin/events
func (h *EventHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title, event type, and event date are required"})
			return
		}
		if req.Status == "" {
			req.Status = models.EventUpcoming
		}
		if !validEventStatuses[req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event status: " + req.Status})
			return
		}

		event := &models.Event{}
		req.apply(event)
		if err := h.events.Create(c.Request.Context(), event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, event.ID)
		c.Set(middleware.AuditResourceTypeKey, "event")
		c.Set(middleware.AuditDescriptionKey, "Created event: "+event.Title)
		c.JSON(http.StatusCreated, gin.H{"event": event})
	}
}

// UpdateHandler updates an event
// PUT /api/admin/events/:id
func (h *EventHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title, event type, and event date are required"})
			return
		}
		if req.Status == "" {
			req.Status = models.EventUpcoming
		}
		if !validEventStatuses[req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event status: " + req.Status})
			return
		}

		event, err := h.events.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		req.apply(event)
		if err := h.events.Update(c.Request.Context(), event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, event.ID)
		c.Set(middleware.AuditResourceTypeKey, "event")
		c.Set(middleware.AuditDescriptionKey, "Updated event: "+event.Title)
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// DeleteHandler deletes an event
// DELETE /api/admin/events/:id
func (h *EventHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := h.events.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if err := h.events.Delete(c.Request.Context(), event.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, event.ID)
		c.Set(middleware.AuditResourceTypeKey, "event")
		c.Set(middleware.AuditDescriptionKey, "Deleted event: "+event.Title)
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
	}
}
