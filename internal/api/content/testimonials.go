// testimonials.go implements handlers for attributed quotes shown on the site.
package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// TestimonialHandlers handles testimonial endpoints
type TestimonialHandlers struct {
	testimonials *repositories.TestimonialRepository
}

// NewTestimonialHandlers creates a new TestimonialHandlers instance
func NewTestimonialHandlers(testimonials *repositories.TestimonialRepository) *TestimonialHandlers {
	return &TestimonialHandlers{testimonials: testimonials}
}

// ListHandler lists testimonials
func (h *TestimonialHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonials, err := h.testimonials.List(c.Request.Context(), publishedOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list testimonials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
	}
}

// TestimonialRequest represents the create/update payload for a testimonial
type TestimonialRequest struct {
	Author      string `json:"author" binding:"required"`
	AuthorTitle string `json:"author_title"`
	Quote       string `json:"quote" binding:"required"`
	Photo       string `json:"photo"`
	IsPublished bool   `json:"is_published"`
}

func (req *TestimonialRequest) apply(t *models.Testimonial) {
	t.Author = req.Author
	t.AuthorTitle = req.AuthorTitle
	t.Quote = req.Quote
	t.Photo = req.Photo
	t.IsPublished = req.IsPublished
}

// CreateHandler creates a testimonial
// POST /api/admin/testimonials
func (h *TestimonialHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TestimonialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Author and quote are required"})
			return
		}

		testimonial := &models.Testimonial{}
		req.apply(testimonial)
		if err := h.testimonials.Create(c.Request.Context(), testimonial); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create testimonial"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, testimonial.ID)
		c.Set(middleware.AuditResourceTypeKey, "testimonial")
		c.Set(middleware.AuditDescriptionKey, "Created testimonial by "+testimonial.Author)
		c.JSON(http.StatusCreated, gin.H{"testimonial": testimonial})
	}
}

// UpdateHandler updates a testimonial
// PUT /api/admin/testimonials/:id
func (h *TestimonialHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TestimonialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Author and quote are required"})
			return
		}

		testimonial, err := h.testimonials.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve testimonial"})
			return
		}
		if testimonial == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
			return
		}

		req.apply(testimonial)
		if err := h.testimonials.Update(c.Request.Context(), testimonial); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update testimonial"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, testimonial.ID)
		c.Set(middleware.AuditResourceTypeKey, "testimonial")
		c.Set(middleware.AuditDescriptionKey, "Updated testimonial by "+testimonial.Author)
		c.JSON(http.StatusOK, gin.H{"testimonial": testimonial})
	}
}

// DeleteHandler deletes a testimonial
// DELETE /api/admin/testimonials/:id
func (h *TestimonialHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonial, err := h.testimonials.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve testimonial"})
			return
		}
		if testimonial == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
			return
		}
		if err := h.testimonials.Delete(c.Request.Context(), testimonial.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete testimonial"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, testimonial.ID)
		c.Set(middleware.AuditResourceTypeKey, "testimonial")
		c.Set(middleware.AuditDescriptionKey, "Deleted testimonial by "+testimonial.Author)
		c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted"})
	}
}
