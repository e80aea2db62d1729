// social_works.go implements handlers for charitable initiative records.
package content

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// SocialWorkHandlers handles social work endpoints
type SocialWorkHandlers struct {
	works *repositories.SocialWorkRepository
}

// NewSocialWorkHandlers creates a new SocialWorkHandlers instance
func NewSocialWorkHandlers(works *repositories.SocialWorkRepository) *SocialWorkHandlers {
	return &SocialWorkHandlers{works: works}
}

// ListHandler lists initiatives with optional category and year filters
func (h *SocialWorkHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := repositories.SocialWorkFilters{PublishedOnly: publishedOnly}
		if category := c.Query("category"); category != "" {
			filters.Category = &category
		}
		if raw := c.Query("year"); raw != "" {
			if year, err := strconv.Atoi(raw); err == nil {
				filters.Year = &year
			}
		}

		works, err := h.works.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list social work"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"social_works": works})
	}
}

// GetHandler retrieves a single initiative
func (h *SocialWorkHandlers) GetHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		work, err := h.works.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve social work"})
			return
		}
		if work == nil || (publishedOnly && !work.IsPublished) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Social work not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"social_work": work})
	}
}

// SocialWorkRequest represents the create/update payload for an initiative
type SocialWorkRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Category     string          `json:"category" binding:"required"`
	Year         int             `json:"year" binding:"required"`
	PeopleHelped int             `json:"people_helped"`
	CoverImage   string          `json:"cover_image"`
	Gallery      json.RawMessage `json:"gallery"`
	IsPublished  bool            `json:"is_published"`
}

func (req *SocialWorkRequest) apply(work *models.SocialWork) {
	work.Title = req.Title
	work.Description = req.Description
	work.Category = req.Category
	work.Year = req.Year
	work.PeopleHelped = req.PeopleHelped
	work.CoverImage = req.CoverImage
	work.Gallery = req.Gallery
	work.IsPublished = req.IsPublished
}

// CreateHandler creates an initiative
// POST /api/admin/social-works
func (h *SocialWorkHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SocialWorkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title, category, and year are required"})
			return
		}
		if req.PeopleHelped < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "People helped cannot be negative"})
			return
		}

		work := &models.SocialWork{}
		req.apply(work)
		if err := h.works.Create(c.Request.Context(), work); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create social work"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, work.ID)
		c.Set(middleware.AuditResourceTypeKey, "social_work")
		c.Set(middleware.AuditDescriptionKey, "Created social work: "+work.Title)
		c.JSON(http.StatusCreated, gin.H{"social_work": work})
	}
}

// UpdateHandler updates an initiative
// PUT /api/admin/social-works/:id
func (h *SocialWorkHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SocialWorkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title, category, and year are required"})
			return
		}
		if req.PeopleHelped < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "People helped cannot be negative"})
			return
		}

		work, err := h.works.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve social work"})
			return
		}
		if work == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Social work not found"})
			return
		}

		req.apply(work)
		if err := h.works.Update(c.Request.Context(), work); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update social work"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, work.ID)
		c.Set(middleware.AuditResourceTypeKey, "social_work")
		c.Set(middleware.AuditDescriptionKey, "Updated social work: "+work.Title)
		c.JSON(http.StatusOK, gin.H{"social_work": work})
	}
}

// DeleteHandler deletes an initiative
// DELETE /api/admin/social-works/:id
func (h *SocialWorkHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		work, err := h.works.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve social work"})
			return
		}
		if work == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Social work not found"})
			return
		}
		if err := h.works.Delete(c.Request.Context(), work.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete social work"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, work.ID)
		c.Set(middleware.AuditResourceTypeKey, "social_work")
		c.Set(middleware.AuditDescriptionKey, "Deleted social work: "+work.Title)
		c.JSON(http.StatusOK, gin.H{"message": "Social work deleted"})
	}
}
