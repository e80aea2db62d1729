// admins.go implements handlers for admin account management: listing,
// creating, updating, and deleting admins. The system refuses any change that
// would leave it without an active super admin.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// AdminHandlers handles admin account management endpoints
type AdminHandlers struct {
	adminRepo *repositories.AdminRepository
}

// NewAdminHandlers creates a new AdminHandlers instance
func NewAdminHandlers(adminRepo *repositories.AdminRepository) *AdminHandlers {
	return &AdminHandlers{adminRepo: adminRepo}
}

// @Summary      List admins
// @Description  Get all admin accounts. Super admin only.
// @Tags         Admins
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "admins: []models.Admin"
// @Failure      403  {object}  map[string]interface{}  "Forbidden"
// @Router       /api/admin/admins [get]
// ListHandler lists all admin accounts
// GET /api/admin/admins
func (h *AdminHandlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := h.adminRepo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list admins",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"admins": admins,
		})
	}
}

// GetHandler retrieves a single admin account
// GET /api/admin/admins/:id
func (h *AdminHandlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := h.adminRepo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve admin",
			})
			return
		}
		if admin == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Admin not found",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"admin": admin,
		})
	}
}

// CreateAdminRequest represents the request to create an admin account
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// @Summary      Create admin
// @Description  Create a new admin account. Super admin only.
// @Tags         Admins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  CreateAdminRequest  true  "Admin creation request"
// @Success      201  {object}  map[string]interface{}  "admin: models.Admin"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Failure      409  {object}  map[string]interface{}  "Email already in use"
// @Router       /api/admin/admins [post]
// CreateHandler creates a new admin account
// POST /api/admin/admins
func (h *AdminHandlers) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Name, email, role, and a password of at least 8 characters are required",
			})
			return
		}

		if !models.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Role must be super_admin or editor",
			})
			return
		}

		existing, err := h.adminRepo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create admin",
			})
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error": "An admin with this email already exists",
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create admin",
			})
			return
		}

		admin := &models.Admin{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         req.Role,
			IsActive:     true,
		}
		if err := h.adminRepo.Create(c.Request.Context(), admin); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create admin",
			})
			return
		}

		c.Set(middleware.AuditResourceIDKey, admin.ID)
		c.Set(middleware.AuditResourceTypeKey, "admin")
		c.Set(middleware.AuditDescriptionKey, "Created admin: "+admin.Email)

		c.JSON(http.StatusCreated, gin.H{
			"admin": admin,
		})
	}
}

// UpdateAdminRequest represents the request to update an admin account
type UpdateAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// @Summary      Update admin
// @Description  Update an admin account. A change that would demote or deactivate the last active super admin is rejected. Super admin only.
// @Tags         Admins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Admin ID"
// @Param        body  body  UpdateAdminRequest  true  "Admin update request"
// @Success      200  {object}  map[string]interface{}  "admin: models.Admin"
// @Failure      400  {object}  map[string]interface{}  "Invalid request or would remove the last super admin"
// @Failure      404  {object}  map[string]interface{}  "Admin not found"
// @Router       /api/admin/admins/{id} [put]
// UpdateHandler updates an admin account
// PUT /api/admin/admins/:id
func (h *AdminHandlers) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Name, email, role, and is_active are required",
			})
			return
		}
		if !models.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Role must be super_admin or editor",
			})
			return
		}

		admin, err := h.adminRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update admin",
			})
			return
		}
		if admin == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Admin not found",
			})
			return
		}

		// Admins cannot deactivate their own account; another super admin has
		// to do it. This keeps a compromised or confused session from locking
		// the actor out mid-flight.
		actorID := c.GetString(middleware.AdminIDContextKey)
		if actorID == id && !*req.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "You cannot deactivate your own account",
			})
			return
		}

		// Refuse to demote or deactivate the last active super admin.
		losesSuperAdmin := admin.IsSuperAdmin() && admin.IsActive &&
			(req.Role != models.RoleSuperAdmin || !*req.IsActive)
		if losesSuperAdmin {
			others, err := h.adminRepo.CountOtherActiveSuperAdmins(c.Request.Context(), id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to update admin",
				})
				return
			}
			if others == 0 {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Cannot remove the last active super admin",
				})
				return
			}
		}

		admin.Name = req.Name
		admin.Email = req.Email
		admin.Role = req.Role
		admin.IsActive = *req.IsActive
		if err := h.adminRepo.Update(c.Request.Context(), admin); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update admin",
			})
			return
		}

		c.Set(middleware.AuditResourceIDKey, admin.ID)
		c.Set(middleware.AuditResourceTypeKey, "admin")
		c.Set(middleware.AuditDescriptionKey, "Updated admin: "+admin.Email)

		c.JSON(http.StatusOK, gin.H{
			"admin": admin,
		})
	}
}

// UpdatePasswordRequest represents the request to change an admin's password
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UpdatePasswordHandler sets a new password for an admin account
// PATCH /api/admin/admins/:id/password
func (h *AdminHandlers) UpdatePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdatePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "A password of at least 8 characters is required",
			})
			return
		}

		admin, err := h.adminRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update password",
			})
			return
		}
		if admin == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Admin not found",
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update password",
			})
			return
		}
		if err := h.adminRepo.UpdatePassword(c.Request.Context(), id, string(hash)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update password",
			})
			return
		}

		c.Set(middleware.AuditResourceIDKey, id)
		c.Set(middleware.AuditResourceTypeKey, "admin")
		c.Set(middleware.AuditDescriptionKey, "Changed password for admin: "+admin.Email)

		c.JSON(http.StatusOK, gin.H{
			"message": "Password updated",
		})
	}
}

// @Summary      Delete admin
// @Description  Delete an admin account. Deleting the last active super admin or your own account is rejected. Super admin only.
// @Tags         Admins
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Admin ID"
// @Success      200  {object}  map[string]interface{}  "message: string"
// @Failure      400  {object}  map[string]interface{}  "Would remove the last super admin or self"
// @Failure      404  {object}  map[string]interface{}  "Admin not found"
// @Router       /api/admin/admins/{id} [delete]
// DeleteHandler removes an admin account
// DELETE /api/admin/admins/:id
func (h *AdminHandlers) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		actorID := c.GetString(middleware.AdminIDContextKey)
		if actorID == id {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "You cannot delete your own account",
			})
			return
		}

		admin, err := h.adminRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to delete admin",
			})
			return
		}
		if admin == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Admin not found",
			})
			return
		}

		if admin.IsSuperAdmin() && admin.IsActive {
			others, err := h.adminRepo.CountOtherActiveSuperAdmins(c.Request.Context(), id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to delete admin",
				})
				return
			}
			if others == 0 {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Cannot remove the last active super admin",
				})
				return
			}
		}

		if err := h.adminRepo.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to delete admin",
			})
			return
		}

		c.Set(middleware.AuditResourceIDKey, id)
		c.Set(middleware.AuditResourceTypeKey, "admin")
		c.Set(middleware.AuditDescriptionKey, "Deleted admin: "+admin.Email)

		c.JSON(http.StatusOK, gin.H{
			"message": "Admin deleted",
		})
	}
}
