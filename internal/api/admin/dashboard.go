// dashboard.go implements the admin dashboard aggregate endpoint.
package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
)

// DashboardHandlers handles the admin dashboard endpoint
type DashboardHandlers struct {
	dashRepo *repositories.DashboardRepository
}

// NewDashboardHandlers creates a new DashboardHandlers instance
func NewDashboardHandlers(dashRepo *repositories.DashboardRepository) *DashboardHandlers {
	return &DashboardHandlers{dashRepo: dashRepo}
}

// @Summary      Admin dashboard
// @Description  Entity counts, recent contact messages, upcoming events, and a six-month event histogram.
// @Tags         Dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "counts, recent_contacts, upcoming_events, events_by_month"
// @Router       /api/admin/dashboard [get]
// GetHandler returns the dashboard aggregates
// GET /api/admin/dashboard
func (h *DashboardHandlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		counts, err := h.dashRepo.Counts(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load dashboard",
			})
			return
		}

		recentContacts, err := h.dashRepo.RecentContacts(ctx, 5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load dashboard",
			})
			return
		}

		upcomingEvents, err := h.dashRepo.UpcomingEvents(ctx, 5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load dashboard",
			})
			return
		}

		since := time.Now().AddDate(0, -6, 0)
		eventsByMonth, err := h.dashRepo.EventsByMonth(ctx, since)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load dashboard",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"counts":          counts,
			"recent_contacts": recentContacts,
			"upcoming_events": upcomingEvents,
			"events_by_month": eventsByMonth,
		})
	}
}
