// contacts.go implements the public contact form and the admin inbox with its
// new → read → replied workflow. Submissions always start as new regardless of
// what the client sends.
package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// ContactHandlers handles contact form and inbox endpoints
type ContactHandlers struct {
	contacts *repositories.ContactRepository
}

// NewContactHandlers creates a new ContactHandlers instance
func NewContactHandlers(contacts *repositories.ContactRepository) *ContactHandlers {
	return &ContactHandlers{contacts: contacts}
}

// ContactRequest represents a public contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// @Summary      Submit contact form
// @Description  Submit a message through the public contact form. Rate limited.
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        body  body  ContactRequest  true  "Contact form submission"
// @Success      201  {object}  map[string]interface{}  "message"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Router       /api/public/contact [post]
// SubmitHandler accepts a public contact form submission
// POST /api/public/contact
func (h *ContactHandlers) SubmitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, a valid email, subject, and message are required"})
			return
		}

		contact := &models.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Subject: req.Subject,
			Message: req.Message,
		}
		if err := h.contacts.Create(c.Request.Context(), contact); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thank you for reaching out. We will get back to you soon."})
	}
}

// ListHandler lists inbox messages, optionally by status
// GET /api/admin/contacts
func (h *ContactHandlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *string
		if raw := c.Query("status"); raw != "" {
			if !models.ValidContactStatus(raw) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + raw})
				return
			}
			status = &raw
		}

		contacts, err := h.contacts.List(c.Request.Context(), status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contacts": contacts})
	}
}

// GetHandler retrieves a single inbox message
// GET /api/admin/contacts/:id
func (h *ContactHandlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		contact, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
			return
		}
		if contact == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"contact": contact})
	}
}

// ContactStatusRequest represents a status transition on an inbox message
type ContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatusHandler moves a message through the new → read → replied workflow
// PATCH /api/admin/contacts/:id/status
func (h *ContactHandlers) UpdateStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		if !models.ValidContactStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be new, read, or replied"})
			return
		}

		contact, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
			return
		}
		if contact == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		if err := h.contacts.UpdateStatus(c.Request.Context(), contact.ID, req.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message status"})
			return
		}
		contact.Status = req.Status

		c.Set(middleware.AuditResourceIDKey, contact.ID)
		c.Set(middleware.AuditResourceTypeKey, "contact")
		c.Set(middleware.AuditDescriptionKey, "Marked message from "+contact.Email+" as "+req.Status)
		c.JSON(http.StatusOK, gin.H{"contact": contact})
	}
}

// DeleteHandler deletes an inbox message
// DELETE /api/admin/contacts/:id
func (h *ContactHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		contact, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
			return
		}
		if contact == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if err := h.contacts.Delete(c.Request.Context(), contact.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, contact.ID)
		c.Set(middleware.AuditResourceTypeKey, "contact")
		c.Set(middleware.AuditDescriptionKey, "Deleted message from "+contact.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	}
}
