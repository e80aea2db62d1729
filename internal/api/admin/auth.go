// auth.go implements HTTP handlers for admin login, session introspection, and logout.
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bondhu-gosthi/cms-backend/internal/audit"
	"github.com/bondhu-gosthi/cms-backend/internal/auth"
	"github.com/bondhu-gosthi/cms-backend/internal/config"
	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
	"github.com/bondhu-gosthi/cms-backend/internal/safego"
	"github.com/bondhu-gosthi/cms-backend/internal/telemetry"
)

// AuthHandlers handles authentication-related endpoints
type AuthHandlers struct {
	cfg       *config.Config
	adminRepo *repositories.AdminRepository
	recorder  *audit.Recorder
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(cfg *config.Config, adminRepo *repositories.AdminRepository, recorder *audit.Recorder) *AuthHandlers {
	return &AuthHandlers{
		cfg:       cfg,
		adminRepo: adminRepo,
		recorder:  recorder,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Admin login
// @Description  Authenticate with email and password, returns a session JWT
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "Login credentials"
// @Success      200  {object}  map[string]interface{}  "token: string, admin: models.Admin"
// @Failure      400  {object}  map[string]interface{}  "Invalid request body"
// @Failure      401  {object}  map[string]interface{}  "Invalid credentials or deactivated account"
// @Router       /api/auth/login [post]
// LoginHandler authenticates an admin and issues a JWT
// POST /api/auth/login
func (h *AuthHandlers) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Email and password are required",
			})
			return
		}

		admin, err := h.adminRepo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Login failed",
			})
			return
		}

		// The error message never reveals whether the email exists.
		if admin == nil {
			telemetry.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			telemetry.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}

		if !admin.IsActive {
			telemetry.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Account is deactivated",
			})
			return
		}

		token, err := auth.GenerateJWT(admin.ID, admin.Email, admin.Role, h.cfg.Auth.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to issue token",
			})
			return
		}

		telemetry.LoginAttemptsTotal.WithLabelValues("success").Inc()

		// Last-login tracking is best-effort; a failed update never blocks login.
		adminID := admin.ID
		safego.Go("update-last-login", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = h.adminRepo.UpdateLastLogin(ctx, adminID)
		})

		h.recorder.RecordAsync(audit.Entry{
			AdminID:     admin.ID,
			Action:      models.ActionLogin,
			Module:      models.ModuleAuth,
			Description: "Admin logged in",
			IPAddress:   c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
		})

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"admin": admin,
		})
	}
}

// @Summary      Current admin
// @Description  Return the admin identified by the bearer token
// @Tags         Authentication
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "admin: models.Admin"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Router       /api/auth/me [get]
// MeHandler returns the authenticated admin
// GET /api/auth/me
func (h *AuthHandlers) MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminVal, exists := c.Get(middleware.AdminContextKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authenticated",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"admin": adminVal,
		})
	}
}

// @Summary      Admin logout
// @Description  Record the end of the session. Tokens are stateless, so the client discards the JWT.
// @Tags         Authentication
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "message: string"
// @Router       /api/auth/logout [post]
// LogoutHandler records a logout event
// POST /api/auth/logout
func (h *AuthHandlers) LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetString(middleware.AdminIDContextKey)
		if adminID != "" {
			h.recorder.RecordAsync(audit.Entry{
				AdminID:     adminID,
				Action:      models.ActionLogout,
				Module:      models.ModuleAuth,
				Description: "Admin logged out",
				IPAddress:   c.ClientIP(),
				UserAgent:   c.Request.UserAgent(),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out",
		})
	}
}
