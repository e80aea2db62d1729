// stats.go implements the public homepage counters endpoint.
package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
)

// StatsHandlers handles the public stats endpoint
type StatsHandlers struct {
	dashboard *repositories.DashboardRepository
	works     *repositories.SocialWorkRepository
}

// NewStatsHandlers creates a new StatsHandlers instance
func NewStatsHandlers(dashboard *repositories.DashboardRepository, works *repositories.SocialWorkRepository) *StatsHandlers {
	return &StatsHandlers{dashboard: dashboard, works: works}
}

// @Summary      Public site statistics
// @Description  Homepage counters: entity totals and the cumulative number of people helped.
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "events, sports, social_works, members, people_helped"
// @Router       /api/public/stats [get]
// PublicStatsHandler returns the homepage counters
// GET /api/public/stats
func (h *StatsHandlers) PublicStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := h.dashboard.Counts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		peopleHelped, err := h.works.SumPeopleHelped(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"events":        counts.Events,
			"sports":        counts.Sports,
			"social_works":  counts.SocialWorks,
			"galleries":     counts.Galleries,
			"members":       counts.Members,
			"people_helped": peopleHelped,
		})
	}
}
