// settings.go implements handlers for the single-row site settings record.
// The repository creates the row with defaults on first read, so these
// handlers never see a missing record.
package content

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// SettingsHandlers handles site settings endpoints
type SettingsHandlers struct {
	settings *repositories.SettingsRepository
}

// NewSettingsHandlers creates a new SettingsHandlers instance
func NewSettingsHandlers(settings *repositories.SettingsRepository) *SettingsHandlers {
	return &SettingsHandlers{settings: settings}
}

// GetHandler returns the site settings, creating defaults on first read
// GET /api/public/settings and GET /api/admin/settings
func (h *SettingsHandlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := h.settings.Get(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// SettingsRequest represents the full settings update payload. Omitted JSONB
// blocks keep their stored value.
type SettingsRequest struct {
	SiteName        string          `json:"site_name" binding:"required"`
	Tagline         string          `json:"tagline"`
	Logo            string          `json:"logo"`
	Contact         json.RawMessage `json:"contact"`
	SocialMedia     json.RawMessage `json:"social_media"`
	SEO             json.RawMessage `json:"seo"`
	MaintenanceMode *bool           `json:"maintenance_mode"`
}

// UpdateHandler updates the site settings
// PUT /api/admin/settings
func (h *SettingsHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Site name is required"})
			return
		}

		settings, err := h.settings.Get(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
			return
		}

		settings.SiteName = req.SiteName
		settings.Tagline = req.Tagline
		settings.Logo = req.Logo
		if req.Contact != nil {
			settings.Contact = req.Contact
		}
		if req.SocialMedia != nil {
			settings.SocialMedia = req.SocialMedia
		}
		if req.SEO != nil {
			settings.SEO = req.SEO
		}
		if req.MaintenanceMode != nil {
			settings.MaintenanceMode = *req.MaintenanceMode
		}

		if err := h.settings.Update(c.Request.Context(), settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, settings.ID)
		c.Set(middleware.AuditResourceTypeKey, "settings")
		c.Set(middleware.AuditDescriptionKey, "Updated site settings")
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// UpdateSocialMediaHandler replaces only the social media links block
// PATCH /api/admin/settings/social-media
func (h *SettingsHandlers) UpdateSocialMediaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var block json.RawMessage
		if err := c.ShouldBindJSON(&block); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A JSON object of social media links is required"})
			return
		}

		settings, err := h.settings.Get(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
			return
		}

		settings.SocialMedia = block
		if err := h.settings.Update(c.Request.Context(), settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, settings.ID)
		c.Set(middleware.AuditResourceTypeKey, "settings")
		c.Set(middleware.AuditDescriptionKey, "Updated social media links")
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// UpdateSEOHandler replaces only the SEO block
// PATCH /api/admin/settings/seo
func (h *SettingsHandlers) UpdateSEOHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var block json.RawMessage
		if err := c.ShouldBindJSON(&block); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A JSON object of SEO settings is required"})
			return
		}

		settings, err := h.settings.Get(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
			return
		}

		settings.SEO = block
		if err := h.settings.Update(c.Request.Context(), settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, settings.ID)
		c.Set(middleware.AuditResourceTypeKey, "settings")
		c.Set(middleware.AuditDescriptionKey, "Updated SEO settings")
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}
