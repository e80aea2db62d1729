// members.go implements handlers for the organization's people directory.
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

// MemberHandlers handles member directory endpoints
type MemberHandlers struct {
	members *repositories.MemberRepository
}

// NewMemberHandlers creates a new MemberHandlers instance
func NewMemberHandlers(members *repositories.MemberRepository) *MemberHandlers {
	return &MemberHandlers{members: members}
}

// ListHandler lists members in priority order. The public route passes
// activeOnly=true; role and spotlight query filters apply on both routes.
func (h *MemberHandlers) ListHandler(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := repositories.MemberFilters{ActiveOnly: activeOnly}
		if role := c.Query("role"); role != "" {
			filters.Role = &role
		}
		if raw := c.Query("spotlight"); raw != "" {
			if spotlight, err := strconv.ParseBool(raw); err == nil {
				filters.Spotlight = &spotlight
			}
		}

		members, err := h.members.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"members": members})
	}
}

// GetHandler retrieves a single member
func (h *MemberHandlers) GetHandler(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := h.members.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
			return
		}
		if member == nil || (activeOnly && !member.IsActive) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"member": member})
	}
}

// MemberRequest represents the create/update payload for a member
type MemberRequest struct {
	Name        string          `json:"name" binding:"required"`
	Role        string          `json:"role"`
	Designation string          `json:"designation"`
	Bio         string          `json:"bio"`
	Photo       string          `json:"photo"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Socials     json.RawMessage `json:"socials"`
	Priority    int             `json:"priority"`
	IsSpotlight bool            `json:"is_spotlight"`
	IsActive    *bool           `json:"is_active"`
	JoinedAt    *time.Time      `json:"joined_at"`
}

func (req *MemberRequest) apply(member *models.Member) {
	member.Name = req.Name
	member.Role = req.Role
	member.Designation = req.Designation
	member.Bio = req.Bio
	member.Photo = req.Photo
	member.Email = req.Email
	member.Phone = req.Phone
	member.Socials = req.Socials
	member.Priority = req.Priority
	member.IsSpotlight = req.IsSpotlight
	member.JoinedAt = req.JoinedAt
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
}

// CreateHandler creates a member
// POST /api/admin/members
func (h *MemberHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		member := &models.Member{IsActive: true}
		req.apply(member)
		if err := h.members.Create(c.Request.Context(), member); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, member.ID)
		c.Set(middleware.AuditResourceTypeKey, "member")
		c.Set(middleware.AuditDescriptionKey, "Created member: "+member.Name)
		c.JSON(http.StatusCreated, gin.H{"member": member})
	}
}

// UpdateHandler updates a member
// PUT /api/admin/members/:id
func (h *MemberHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		member, err := h.members.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
			return
		}
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}

		req.apply(member)
		if err := h.members.Update(c.Request.Context(), member); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, member.ID)
		c.Set(middleware.AuditResourceTypeKey, "member")
		c.Set(middleware.AuditDescriptionKey, "Updated member: "+member.Name)
		c.JSON(http.StatusOK, gin.H{"member": member})
	}
}

// DeleteHandler deletes a member
// DELETE /api/admin/members/:id
func (h *MemberHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := h.members.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
			return
		}
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if err := h.members.Delete(c.Request.Context(), member.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, member.ID)
		c.Set(middleware.AuditResourceTypeKey, "member")
		c.Set(middleware.AuditDescriptionKey, "Deleted member: "+member.Name)
		c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
	}
}
