// press_mentions.go implements handlers for media coverage links.
package content

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// PressMentionHandlers handles press mention endpoints
type PressMentionHandlers struct {
	mentions *repositories.PressMentionRepository
}

// NewPressMentionHandlers creates a new PressMentionHandlers instance
func NewPressMentionHandlers(mentions *repositories.PressMentionRepository) *PressMentionHandlers {
	return &PressMentionHandlers{mentions: mentions}
}

// ListHandler lists mentions, newest coverage first
func (h *PressMentionHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		mentions, err := h.mentions.List(c.Request.Context(), publishedOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list press mentions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"press_mentions": mentions})
	}
}

// PressMentionRequest represents the create/update payload for a mention
type PressMentionRequest struct {
	Outlet      string     `json:"outlet" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	ArticleURL  string     `json:"article_url" binding:"required,url"`
	PublishedOn *time.Time `json:"published_on"`
	Thumbnail   string     `json:"thumbnail"`
	IsPublished bool       `json:"is_published"`
}

func (req *PressMentionRequest) apply(mention *models.PressMention) {
	mention.Outlet = req.Outlet
	mention.Title = req.Title
	mention.ArticleURL = req.ArticleURL
	mention.PublishedOn = req.PublishedOn
	mention.Thumbnail = req.Thumbnail
	mention.IsPublished = req.IsPublished
}

// CreateHandler creates a mention
// POST /api/admin/press-mentions
func (h *PressMentionHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PressMentionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Outlet, title, and a valid article URL are required"})
			return
		}

		mention := &models.PressMention{}
		req.apply(mention)
		if err := h.mentions.Create(c.Request.Context(), mention); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create press mention"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, mention.ID)
		c.Set(middleware.AuditResourceTypeKey, "press_mention")
		c.Set(middleware.AuditDescriptionKey, "Created press mention: "+mention.Outlet+" - "+mention.Title)
		c.JSON(http.StatusCreated, gin.H{"press_mention": mention})
	}
}

// UpdateHandler updates a mention
// PUT /api/admin/press-mentions/:id
func (h *PressMentionHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PressMentionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Outlet, title, and a valid article URL are required"})
			return
		}

		mention, err := h.mentions.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve press mention"})
			return
		}
		if mention == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Press mention not found"})
			return
		}

		req.apply(mention)
		if err := h.mentions.Update(c.Request.Context(), mention); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update press mention"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, mention.ID)
		c.Set(middleware.AuditResourceTypeKey, "press_mention")
		c.Set(middleware.AuditDescriptionKey, "Updated press mention: "+mention.Outlet+" - "+mention.Title)
		c.JSON(http.StatusOK, gin.H{"press_mention": mention})
	}
}

// DeleteHandler deletes a mention
// DELETE /api/admin/press-mentions/:id
func (h *PressMentionHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		mention, err := h.mentions.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve press mention"})
			return
		}
		if mention == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Press mention not found"})
			return
		}
		if err := h.mentions.Delete(c.Request.Context(), mention.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete press mention"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, mention.ID)
		c.Set(middleware.AuditResourceTypeKey, "press_mention")
		c.Set(middleware.AuditDescriptionKey, "Deleted press mention: "+mention.Outlet+" - "+mention.Title)
		c.JSON(http.StatusOK, gin.H{"message": "Press mention deleted"})
	}
}
