// Package audit records admin actions to the activity log. Activity records
// are intentionally separate from application logs: application logs are
// ephemeral debug output, while the activity log is an immutable per-admin
// trail surfaced in the admin UI and pruned by the retention sweeper.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/safego"
	"github.com/bondhu-gosthi/cms-backend/internal/telemetry"
)

const asyncRecordTimeout = 5 * time.Second

// Entry describes one admin action to be recorded
type Entry struct {
	AdminID      string
	Action       string
	Module       string
	Description  string
	ResourceID   string
	ResourceType string
	IPAddress    string
	UserAgent    string
	Changes      map[string]interface{}
}

// Recorder writes activity log entries for admin mutations
type Recorder struct {
	logs *repositories.ActivityLogRepository
}

// NewRecorder creates a Recorder backed by the given activity log repository
func NewRecorder(logs *repositories.ActivityLogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// Record writes an entry synchronously
func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	log := &models.ActivityLog{
		AdminID:     entry.AdminID,
		Action:      entry.Action,
		Module:      entry.Module,
		Description: entry.Description,
	}
	if entry.ResourceID != "" {
		log.ResourceID = &entry.ResourceID
	}
	if entry.ResourceType != "" {
		log.ResourceType = &entry.ResourceType
	}
	if entry.IPAddress != "" {
		log.IPAddress = &entry.IPAddress
	}
	if entry.UserAgent != "" {
		log.UserAgent = &entry.UserAgent
	}
	if len(entry.Changes) > 0 {
		if raw, err := json.Marshal(entry.Changes); err == nil {
			log.Changes = raw
		}
	}

	if err := r.logs.Create(ctx, log); err != nil {
		telemetry.ActivityLogWriteErrorsTotal.Inc()
		return err
	}
	telemetry.ActivityLogsRecordedTotal.WithLabelValues(entry.Module, entry.Action).Inc()
	return nil
}

// RecordAsync writes an entry in the background so request latency does not
// pay for the insert. Failures are logged and counted, never surfaced to the
// request that triggered them.
func (r *Recorder) RecordAsync(entry Entry) {
	safego.Go("audit-record", func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncRecordTimeout)
		defer cancel()
		if err := r.Record(ctx, entry); err != nil {
			slog.Error("failed to record activity log",
				"admin_id", entry.AdminID,
				"action", entry.Action,
				"module", entry.Module,
				"error", err)
		}
	})
}
