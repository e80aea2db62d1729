// social_posts.go implements handlers for embedded social media posts.
package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// SocialPostHandlers handles embedded social post endpoints
type SocialPostHandlers struct {
	posts *repositories.SocialPostRepository
}

// NewSocialPostHandlers creates a new SocialPostHandlers instance
func NewSocialPostHandlers(posts *repositories.SocialPostRepository) *SocialPostHandlers {
	return &SocialPostHandlers{posts: posts}
}

// ListHandler lists posts with an optional platform filter
func (h *SocialPostHandlers) ListHandler(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var platform *string
		if raw := c.Query("platform"); raw != "" {
			platform = &raw
		}
		posts, err := h.posts.List(c.Request.Context(), platform, publishedOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list social posts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"social_posts": posts})
	}
}

// SocialPostRequest represents the create/update payload for a post
type SocialPostRequest struct {
	Platform    string `json:"platform" binding:"required"`
	PostURL     string `json:"post_url" binding:"required,url"`
	Caption     string `json:"caption"`
	EmbedCode   string `json:"embed_code"`
	IsPublished bool   `json:"is_published"`
}

func (req *SocialPostRequest) apply(post *models.SocialPost) {
	post.Platform = req.Platform
	post.PostURL = req.PostURL
	post.Caption = req.Caption
	post.EmbedCode = req.EmbedCode
	post.IsPublished = req.IsPublished
}

// CreateHandler creates a post
// POST /api/admin/social-posts
func (h *SocialPostHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SocialPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Platform and a valid post URL are required"})
			return
		}

		post := &models.SocialPost{}
		req.apply(post)
		if err := h.posts.Create(c.Request.Context(), post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create social post"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, post.ID)
		c.Set(middleware.AuditResourceTypeKey, "social_post")
		c.Set(middleware.AuditDescriptionKey, "Created social post on "+post.Platform)
		c.JSON(http.StatusCreated, gin.H{"social_post": post})
	}
}

// UpdateHandler updates a post
// PUT /api/admin/social-posts/:id
func (h *SocialPostHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SocialPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Platform and a valid post URL are required"})
			return
		}

		post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve social post"})
			return
		}
		if post == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Social post not found"})
			return
		}

		req.apply(post)
		if err := h.posts.Update(c.Request.Context(), post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update social post"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, post.ID)
		c.Set(middleware.AuditResourceTypeKey, "social_post")
		c.Set(middleware.AuditDescriptionKey, "Updated social post on "+post.Platform)
		c.JSON(http.StatusOK, gin.H{"social_post": post})
	}
}

// DeleteHandler deletes a post
// DELETE /api/admin/social-posts/:id
func (h *SocialPostHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve social post"})
			return
		}
		if post == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Social post not found"})
			return
		}
		if err := h.posts.Delete(c.Request.Context(), post.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete social post"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, post.ID)
		c.Set(middleware.AuditResourceTypeKey, "social_post")
		c.Set(middleware.AuditDescriptionKey, "Deleted social post on "+post.Platform)
		c.JSON(http.StatusOK, gin.H{"message": "Social post deleted"})
	}
}
