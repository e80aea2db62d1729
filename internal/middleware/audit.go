// audit.go provides Gin middleware that records successful admin mutations to
// the activity log.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/audit"
)

// Context keys handlers may set to enrich the recorded activity log entry.
const (
	AuditResourceIDKey   = "audit.resource_id"
	AuditResourceTypeKey = "audit.resource_type"
	AuditDescriptionKey  = "audit.description"
	AuditChangesKey      = "audit.changes"
)

// Audit wraps a mutating route and records an activity log entry after the
// handler completes with a 2xx status. Failed and unauthorized requests leave
// no trail entry. The write happens in the background so the response does not
// wait on it.
func Audit(recorder *audit.Recorder, action, module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		adminID := c.GetString(AdminIDContextKey)
		if adminID == "" {
			return
		}

		entry := audit.Entry{
			AdminID:     adminID,
			Action:      action,
			Module:      module,
			Description: c.GetString(AuditDescriptionKey),
			IPAddress:   c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
		}
		if id := c.GetString(AuditResourceIDKey); id != "" {
			entry.ResourceID = id
		}
		if rt := c.GetString(AuditResourceTypeKey); rt != "" {
			entry.ResourceType = rt
		}
		if changes, exists := c.Get(AuditChangesKey); exists {
			if m, ok := changes.(map[string]interface{}); ok {
				entry.Changes = m
			}
		}

		recorder.RecordAsync(entry)
	}
}
