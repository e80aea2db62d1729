// activity_logs.go implements handlers for browsing the admin activity trail.
// All reads are bounded by the retention window: entries older than the
// horizon are invisible even if a sweep has not physically removed them yet.
package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
)

// ActivityLogHandlers handles activity trail endpoints
type ActivityLogHandlers struct {
	logRepo *repositories.ActivityLogRepository
}

// NewActivityLogHandlers creates a new ActivityLogHandlers instance
func NewActivityLogHandlers(logRepo *repositories.ActivityLogRepository) *ActivityLogHandlers {
	return &ActivityLogHandlers{logRepo: logRepo}
}

// parseDate parses a date query parameter. Invalid values are treated as
// absent rather than rejected, so a malformed filter degrades to an
// unfiltered (still horizon-bounded) listing.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// @Summary      List activity logs
// @Description  Paginated activity trail with optional filters. Results never reach past the retention horizon. Super admin only.
// @Tags         ActivityLogs
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Page number (default 1)"
// @Param        limit       query  int     false  "Items per page (default 50)"
// @Param        admin_id    query  string  false  "Filter by acting admin"
// @Param        module      query  string  false  "Filter by module"
// @Param        action      query  string  false  "Filter by action"
// @Param        start_date  query  string  false  "RFC3339 or YYYY-MM-DD; clamped to the retention horizon"
// @Param        end_date    query  string  false  "RFC3339 or YYYY-MM-DD"
// @Success      200  {object}  map[string]interface{}  "logs, total, page, limit, total_pages"
// @Failure      400  {object}  map[string]interface{}  "Unknown module or action"
// @Router       /api/admin/activity-logs [get]
// ListHandler lists activity log entries
// GET /api/admin/activity-logs
func (h *ActivityLogHandlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		filters := repositories.ActivityLogFilters{
			StartDate: parseDate(c.Query("start_date")),
			EndDate:   parseDate(c.Query("end_date")),
		}
		if adminID := c.Query("admin_id"); adminID != "" {
			filters.AdminID = &adminID
		}
		if module := c.Query("module"); module != "" {
			if !models.ValidModule(module) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Unknown module: " + module,
				})
				return
			}
			filters.Module = &module
		}
		if action := c.Query("action"); action != "" {
			if !models.ValidAction(action) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Unknown action: " + action,
				})
				return
			}
			filters.Action = &action
		}

		result, err := h.logRepo.List(c.Request.Context(), filters, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list activity logs",
			})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// @Summary      Activity log stats
// @Description  Aggregate counts by action, module, and admin inside the retention window. Super admin only.
// @Tags         ActivityLogs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repositories.ActivityStats
// @Router       /api/admin/activity-logs/stats [get]
// StatsHandler returns aggregate activity statistics
// GET /api/admin/activity-logs/stats
func (h *ActivityLogHandlers) StatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := h.logRepo.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to compute activity stats",
			})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GetHandler retrieves a single activity log entry. Entries past the
// retention horizon return 404 like entries that never existed.
// GET /api/admin/activity-logs/:id
func (h *ActivityLogHandlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := h.logRepo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve activity log",
			})
			return
		}
		if entry == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Activity log not found",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"log": entry,
		})
	}
}
