// galleries.go implements handlers for media albums and the homepage slider.
// Public album views bump a per-album counter; counter failures never fail
// the read.
package content

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// GalleryHandlers handles gallery album and slider image endpoints
type GalleryHandlers struct {
	galleries *repositories.GalleryRepository
}

// NewGalleryHandlers creates a new GalleryHandlers instance
func NewGalleryHandlers(galleries *repositories.GalleryRepository) *GalleryHandlers {
	return &GalleryHandlers{galleries: galleries}
}

// ListHandler lists albums with an optional category filter
func (h *GalleryHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category *string
		if raw := c.Query("category"); raw != "" {
			category = &raw
		}
		galleries, err := h.galleries.ListGalleries(c.Request.Context(), category, publishedOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list galleries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"galleries": galleries})
	}
}

// GetHandler retrieves a single album. Public reads count as a view.
func (h *GalleryHandlers) GetHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		gallery, err := h.galleries.GetGallery(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gallery"})
			return
		}
		if gallery == nil || (publishedOnly && !gallery.IsPublished) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}

		if publishedOnly {
			if err := h.galleries.IncrementGalleryViews(c.Request.Context(), gallery.ID); err != nil {
				slog.Warn("failed to count gallery view", "gallery_id", gallery.ID, "error", err)
			} else {
				gallery.Views++
			}
		}
		c.JSON(http.StatusOK, gin.H{"gallery": gallery})
	}
}

// GalleryRequest represents the create/update payload for an album
type GalleryRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CoverImage  string          `json:"cover_image"`
	Media       json.RawMessage `json:"media"`
	IsPublished bool            `json:"is_published"`
}

func (req *GalleryRequest) apply(gallery *models.Gallery) {
	gallery.Title = req.Title
	gallery.Description = req.Description
	gallery.Category = req.Category
	gallery.CoverImage = req.CoverImage
	gallery.Media = req.Media
	gallery.IsPublished = req.IsPublished
}

// CreateHandler creates an album
// POST /api/admin/galleries
func (h *GalleryHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GalleryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}

		gallery := &models.Gallery{}
		req.apply(gallery)
		if err := h.galleries.CreateGallery(c.Request.Context(), gallery); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gallery"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, gallery.ID)
		c.Set(middleware.AuditResourceTypeKey, "gallery")
		c.Set(middleware.AuditDescriptionKey, "Created gallery: "+gallery.Title)
		c.JSON(http.StatusCreated, gin.H{"gallery": gallery})
	}
}

// UpdateHandler updates an album
// PUT /api/admin/galleries/:id
func (h *GalleryHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GalleryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}

		gallery, err := h.galleries.GetGallery(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gallery"})
			return
		}
		if gallery == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}

		req.apply(gallery)
		if err := h.galleries.UpdateGallery(c.Request.Context(), gallery); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gallery"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, gallery.ID)
		c.Set(middleware.AuditResourceTypeKey, "gallery")
		c.Set(middleware.AuditDescriptionKey, "Updated gallery: "+gallery.Title)
		c.JSON(http.StatusOK, gin.H{"gallery": gallery})
	}
}

// DeleteHandler deletes an album
// DELETE /api/admin/galleries/:id
func (h *GalleryHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		gallery, err := h.galleries.GetGallery(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gallery"})
			return
		}
		if gallery == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}
		if err := h.galleries.DeleteGallery(c.Request.Context(), gallery.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gallery"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, gallery.ID)
		c.Set(middleware.AuditResourceTypeKey, "gallery")
		c.Set(middleware.AuditDescriptionKey, "Deleted gallery: "+gallery.Title)
		c.JSON(http.StatusOK, gin.H{"message": "Gallery deleted"})
	}
}

// ListSlidesHandler lists slider images in display order
func (h *GalleryHandlers) ListSlidesHandler(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		slides, err := h.galleries.ListSliderImages(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list slider images"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"slider_images": slides})
	}
}

// SliderImageRequest represents the create/update payload for a slide
type SliderImageRequest struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	ImageURL     string `json:"image_url" binding:"required"`
	LinkURL      string `json:"link_url"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// CreateSlideHandler creates a slider image
// POST /api/admin/slider-images
func (h *GalleryHandlers) CreateSlideHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SliderImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
			return
		}

		slide := &models.SliderImage{
			Title:        req.Title,
			Subtitle:     req.Subtitle,
			ImageURL:     req.ImageURL,
			LinkURL:      req.LinkURL,
			DisplayOrder: req.DisplayOrder,
			IsActive:     true,
		}
		if req.IsActive != nil {
			slide.IsActive = *req.IsActive
		}
		if err := h.galleries.CreateSliderImage(c.Request.Context(), slide); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slider image"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, slide.ID)
		c.Set(middleware.AuditResourceTypeKey, "slider_image")
		c.Set(middleware.AuditDescriptionKey, "Created slider image: "+slide.ImageURL)
		c.JSON(http.StatusCreated, gin.H{"slider_image": slide})
	}
}

// UpdateSlideHandler updates a slider image
// PUT /api/admin/slider-images/:id
func (h *GalleryHandlers) UpdateSlideHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SliderImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
			return
		}

		slide, err := h.galleries.GetSliderImage(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve slider image"})
			return
		}
		if slide == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slider image not found"})
			return
		}

		slide.Title = req.Title
		slide.Subtitle = req.Subtitle
		slide.ImageURL = req.ImageURL
		slide.LinkURL = req.LinkURL
		slide.DisplayOrder = req.DisplayOrder
		if req.IsActive != nil {
			slide.IsActive = *req.IsActive
		}
		if err := h.galleries.UpdateSliderImage(c.Request.Context(), slide); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slider image"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, slide.ID)
		c.Set(middleware.AuditResourceTypeKey, "slider_image")
		c.Set(middleware.AuditDescriptionKey, "Updated slider image: "+slide.ImageURL)
		c.JSON(http.StatusOK, gin.H{"slider_image": slide})
	}
}

// DeleteSlideHandler deletes a slider image
// DELETE /api/admin/slider-images/:id
func (h *GalleryHandlers) DeleteSlideHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		slide, err := h.galleries.GetSliderImage(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve slider image"})
			return
		}
		if slide == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slider image not found"})
			return
		}
		if err := h.galleries.DeleteSliderImage(c.Request.Context(), slide.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slider image"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, slide.ID)
		c.Set(middleware.AuditResourceTypeKey, "slider_image")
		c.Set(middleware.AuditDescriptionKey, "Deleted slider image: "+slide.ImageURL)
		c.JSON(http.StatusOK, gin.H{"message": "Slider image deleted"})
	}
}
