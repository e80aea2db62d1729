// pages.go implements handlers for slug-addressed static pages.
package content

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// PageHandlers handles static page endpoints
type PageHandlers struct {
	pages *repositories.PageRepository
}

// NewPageHandlers creates a new PageHandlers instance
func NewPageHandlers(pages *repositories.PageRepository) *PageHandlers {
	return &PageHandlers{pages: pages}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ListHandler lists pages
func (h *PageHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		pages, err := h.pages.List(c.Request.Context(), publishedOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pages": pages})
	}
}

// GetBySlugHandler retrieves a published page by slug
// GET /api/public/pages/:slug
func (h *PageHandlers) GetBySlugHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := h.pages.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve page"})
			return
		}
		if page == nil || !page.IsPublished {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// GetHandler retrieves a page by ID
// GET /api/admin/pages/:id
func (h *PageHandlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := h.pages.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve page"})
			return
		}
		if page == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// PageRequest represents the create/update payload for a page
type PageRequest struct {
	Slug        string          `json:"slug" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Content     string          `json:"content"`
	Meta        json.RawMessage `json:"meta"`
	IsPublished bool            `json:"is_published"`
}

// CreateHandler creates a page
// POST /api/admin/pages
func (h *PageHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug and title are required"})
			return
		}
		if !slugPattern.MatchString(req.Slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must be lowercase letters, digits, and hyphens"})
			return
		}

		existing, err := h.pages.GetBySlug(c.Request.Context(), req.Slug)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A page with this slug already exists"})
			return
		}

		page := &models.Page{
			Slug:        req.Slug,
			Title:       req.Title,
			Content:     req.Content,
			Meta:        req.Meta,
			IsPublished: req.IsPublished,
		}
		if err := h.pages.Create(c.Request.Context(), page); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, page.ID)
		c.Set(middleware.AuditResourceTypeKey, "page")
		c.Set(middleware.AuditDescriptionKey, "Created page: "+page.Slug)
		c.JSON(http.StatusCreated, gin.H{"page": page})
	}
}

// UpdateHandler updates a page
// PUT /api/admin/pages/:id
func (h *PageHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug and title are required"})
			return
		}
		if !slugPattern.MatchString(req.Slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must be lowercase letters, digits, and hyphens"})
			return
		}

		page, err := h.pages.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve page"})
			return
		}
		if page == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}

		if req.Slug != page.Slug {
			existing, err := h.pages.GetBySlug(c.Request.Context(), req.Slug)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
				return
			}
			if existing != nil {
				c.JSON(http.StatusConflict, gin.H{"error": "A page with this slug already exists"})
				return
			}
		}

		page.Slug = req.Slug
		page.Title = req.Title
		page.Content = req.Content
		page.Meta = req.Meta
		page.IsPublished = req.IsPublished
		if err := h.pages.Update(c.Request.Context(), page); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, page.ID)
		c.Set(middleware.AuditResourceTypeKey, "page")
		c.Set(middleware.AuditDescriptionKey, "Updated page: "+page.Slug)
		c.JSON(http.StatusOK, gin.H{"page": page})
	}
}

// DeleteHandler deletes a page
// DELETE /api/admin/pages/:id
func (h *PageHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := h.pages.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve page"})
			return
		}
		if page == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		if err := h.pages.Delete(c.Request.Context(), page.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, page.ID)
		c.Set(middleware.AuditResourceTypeKey, "page")
		c.Set(middleware.AuditDescriptionKey, "Deleted page: "+page.Slug)
		c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
	}
}
