// sports.go implements handlers for sports and their tournaments. Tournament
// teams and match fixtures travel as JSONB documents on the tournament row.
package content

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
)

// SportHandlers handles sport and tournament endpoints
type SportHandlers struct {
	sports *repositories.SportRepository
}

// NewSportHandlers creates a new SportHandlers instance
func NewSportHandlers(sports *repositories.SportRepository) *SportHandlers {
	return &SportHandlers{sports: sports}
}

// ListSportsHandler lists sports. The public route passes activeOnly=true.
func (h *SportHandlers) ListSportsHandler(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sports, err := h.sports.ListSports(c.Request.Context(), activeOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sports": sports})
	}
}

// GetSportHandler retrieves a single sport
func (h *SportHandlers) GetSportHandler(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sport, err := h.sports.GetSport(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sport"})
			return
		}
		if sport == nil || (activeOnly && !sport.IsActive) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sport not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sport": sport})
	}
}

// SportRequest represents the create/update payload for a sport
type SportRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
}

// CreateSportHandler creates a sport
// POST /api/admin/sports
func (h *SportHandlers) CreateSportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		sport := &models.Sport{
			Name:        req.Name,
			Description: req.Description,
			Icon:        req.Icon,
			IsActive:    true,
		}
		if req.IsActive != nil {
			sport.IsActive = *req.IsActive
		}
		if err := h.sports.CreateSport(c.Request.Context(), sport); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sport"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, sport.ID)
		c.Set(middleware.AuditResourceTypeKey, "sport")
		c.Set(middleware.AuditDescriptionKey, "Created sport: "+sport.Name)
		c.JSON(http.StatusCreated, gin.H{"sport": sport})
	}
}

// UpdateSportHandler updates a sport
// PUT /api/admin/sports/:id
func (h *SportHandlers) UpdateSportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		sport, err := h.sports.GetSport(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sport"})
			return
		}
		if sport == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sport not found"})
			return
		}

		sport.Name = req.Name
		sport.Description = req.Description
		sport.Icon = req.Icon
		if req.IsActive != nil {
			sport.IsActive = *req.IsActive
		}
		if err := h.sports.UpdateSport(c.Request.Context(), sport); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sport"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, sport.ID)
		c.Set(middleware.AuditResourceTypeKey, "sport")
		c.Set(middleware.AuditDescriptionKey, "Updated sport: "+sport.Name)
		c.JSON(http.StatusOK, gin.H{"sport": sport})
	}
}

// DeleteSportHandler deletes a sport and, via ON DELETE CASCADE, its tournaments
// DELETE /api/admin/sports/:id
func (h *SportHandlers) DeleteSportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sport, err := h.sports.GetSport(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sport"})
			return
		}
		if sport == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sport not found"})
			return
		}
		if err := h.sports.DeleteSport(c.Request.Context(), sport.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sport"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, sport.ID)
		c.Set(middleware.AuditResourceTypeKey, "sport")
		c.Set(middleware.AuditDescriptionKey, "Deleted sport: "+sport.Name)
		c.JSON(http.StatusOK, gin.H{"message": "Sport deleted"})
	}
}

// ListTournamentsHandler lists tournaments, optionally narrowed to one sport
// via the sport_id query parameter
func (h *SportHandlers) ListTournamentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sportID *string
		if raw := c.Query("sport_id"); raw != "" {
			sportID = &raw
		}
		tournaments, err := h.sports.ListTournaments(c.Request.Context(), sportID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tournaments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tournaments": tournaments})
	}
}

// GetTournamentHandler retrieves a single tournament
func (h *SportHandlers) GetTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournament, err := h.sports.GetTournament(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournament"})
			return
		}
		if tournament == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// TournamentRequest represents the create/update payload for a tournament
type TournamentRequest struct {
	SportID     string          `json:"sport_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Season      string          `json:"season"`
	Status      string          `json:"status"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Teams       json.RawMessage `json:"teams"`
	Matches     json.RawMessage `json:"matches"`
}

func (req *TournamentRequest) apply(t *models.Tournament) {
	t.SportID = req.SportID
	t.Name = req.Name
	t.Description = req.Description
	t.Season = req.Season
	t.Status = req.Status
	t.StartDate = req.StartDate
	t.EndDate = req.EndDate
	t.Teams = req.Teams
	t.Matches = req.Matches
}

// CreateTournamentHandler creates a tournament under an existing sport
// POST /api/admin/tournaments
func (h *SportHandlers) CreateTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TournamentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sport ID and name are required"})
			return
		}

		sport, err := h.sports.GetSport(c.Request.Context(), req.SportID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify sport"})
			return
		}
		if sport == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sport: " + req.SportID})
			return
		}

		tournament := &models.Tournament{}
		req.apply(tournament)
		if err := h.sports.CreateTournament(c.Request.Context(), tournament); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tournament"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, tournament.ID)
		c.Set(middleware.AuditResourceTypeKey, "tournament")
		c.Set(middleware.AuditDescriptionKey, "Created tournament: "+tournament.Name)
		c.JSON(http.StatusCreated, gin.H{"tournament": tournament})
	}
}

// UpdateTournamentHandler updates a tournament
// PUT /api/admin/tournaments/:id
func (h *SportHandlers) UpdateTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TournamentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sport ID and name are required"})
			return
		}

		tournament, err := h.sports.GetTournament(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournament"})
			return
		}
		if tournament == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}

		req.apply(tournament)
		if err := h.sports.UpdateTournament(c.Request.Context(), tournament); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tournament"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, tournament.ID)
		c.Set(middleware.AuditResourceTypeKey, "tournament")
		c.Set(middleware.AuditDescriptionKey, "Updated tournament: "+tournament.Name)
		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// DeleteTournamentHandler deletes a tournament
// DELETE /api/admin/tournaments/:id
func (h *SportHandlers) DeleteTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournament, err := h.sports.GetTournament(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournament"})
			return
		}
		if tournament == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}
		if err := h.sports.DeleteTournament(c.Request.Context(), tournament.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tournament"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, tournament.ID)
		c.Set(middleware.AuditResourceTypeKey, "tournament")
		c.Set(middleware.AuditDescriptionKey, "Deleted tournament: "+tournament.Name)
		c.JSON(http.StatusOK, gin.H{"message": "Tournament deleted"})
	}
}
