// news.go implements handlers for announcements and notices. Public reads hide
// unpublished and expired items; published_at is stamped once by the
// repository on first publish.
package content

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// NewsHandlers handles news endpoints
type NewsHandlers struct {
	news *repositories.NewsRepository
}

// NewNewsHandlers creates a new NewsHandlers instance
func NewNewsHandlers(news *repositories.NewsRepository) *NewsHandlers {
	return &NewsHandlers{news: news}
}

// ListHandler lists news items with an optional type filter
func (h *NewsHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := repositories.NewsFilters{PublishedOnly: publishedOnly}
		if newsType := c.Query("type"); newsType != "" {
			filters.NewsType = &newsType
		}

		items, err := h.news.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list news"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": items})
	}
}

// GetHandler retrieves a single news item. Public reads count as a view and
// treat unpublished or expired items as missing.
func (h *NewsHandlers) GetHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := h.news.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve news"})
			return
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		if publishedOnly {
			expired := item.ExpiresAt != nil && item.ExpiresAt.Before(time.Now())
			if !item.IsPublished || expired {
				c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
				return
			}
			if err := h.news.IncrementViews(c.Request.Context(), item.ID); err != nil {
				slog.Warn("failed to count news view", "news_id", item.ID, "error", err)
			} else {
				item.Views++
			}
		}
		c.JSON(http.StatusOK, gin.H{"news": item})
	}
}

// NewsRequest represents the create/update payload for a news item
type NewsRequest struct {
	Title       string     `json:"title" binding:"required"`
	Content     string     `json:"content" binding:"required"`
	NewsType    string     `json:"news_type"`
	CoverImage  string     `json:"cover_image"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsPublished bool       `json:"is_published"`
}

func (req *NewsRequest) apply(item *models.News) {
	item.Title = req.Title
	item.Content = req.Content
	item.NewsType = req.NewsType
	item.CoverImage = req.CoverImage
	item.ExpiresAt = req.ExpiresAt
	item.IsPublished = req.IsPublished
}

// CreateHandler creates a news item
// POST /api/admin/news
func (h *NewsHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
			return
		}

		item := &models.News{}
		req.apply(item)
		if err := h.news.Create(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, item.ID)
		c.Set(middleware.AuditResourceTypeKey, "news")
		c.Set(middleware.AuditDescriptionKey, "Created news: "+item.Title)
		c.JSON(http.StatusCreated, gin.H{"news": item})
	}
}

// UpdateHandler updates a news item
// PUT /api/admin/news/:id
func (h *NewsHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
			return
		}

		item, err := h.news.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve news"})
			return
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}

		req.apply(item)
		if err := h.news.Update(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update news"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, item.ID)
		c.Set(middleware.AuditResourceTypeKey, "news")
		c.Set(middleware.AuditDescriptionKey, "Updated news: "+item.Title)
		c.JSON(http.StatusOK, gin.H{"news": item})
	}
}

// DeleteHandler deletes a news item
// DELETE /api/admin/news/:id
func (h *NewsHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := h.news.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve news"})
			return
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		if err := h.news.Delete(c.Request.Context(), item.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete news"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, item.ID)
		c.Set(middleware.AuditResourceTypeKey, "news")
		c.Set(middleware.AuditDescriptionKey, "Deleted news: "+item.Title)
		c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
	}
}
