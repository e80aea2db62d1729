// activity_log_repository.go implements ActivityLogRepository, the persistence
// layer for the admin activity trail. All read paths are bounded by the
// retention horizon so expired rows are invisible even before a sweep has
// physically removed them.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/retention"
)

// ActivityLogRepository handles activity log database operations
type ActivityLogRepository struct {
	db     *sqlx.DB
	policy retention.Policy
	// now is swappable for tests; defaults to time.Now
	now func() time.Time
}

// NewActivityLogRepository creates a new ActivityLogRepository bound to a
// retention policy.
func NewActivityLogRepository(db *sqlx.DB, policy retention.Policy) *ActivityLogRepository {
	return &ActivityLogRepository{db: db, policy: policy, now: time.Now}
}

// ActivityLogFilters contains optional filters for querying the activity trail
type ActivityLogFilters struct {
	AdminID   *string
	Module    *string
	Action    *string
	StartDate *time.Time
	EndDate   *time.Time
}

// ActivityLogPage is one page of list results with pagination metadata
type ActivityLogPage struct {
	Logs       []*models.ActivityLogWithAdmin `json:"logs"`
	Total      int64                          `json:"total"`
	Page       int                            `json:"page"`
	Limit      int                            `json:"limit"`
	TotalPages int64                          `json:"total_pages"`
}

// ActivityStats aggregates the retention window three ways
type ActivityStats struct {
	ByAction []*models.ActionStat        `json:"by_action"`
	ByModule []*models.ModuleStat        `json:"by_module"`
	ByAdmin  []*models.AdminActivityStat `json:"by_admin"`
}

// Create inserts a new activity log entry. The repository assigns the ID and,
// when unset, the timestamp. There is deliberately no update method: the trail
// is append-only.
func (r *ActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	entry.ID = uuid.New().String()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now()
	}

	query := `
		INSERT INTO activity_logs (id, admin_id, action, module, description, resource_id, resource_type, ip_address, user_agent, changes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.AdminID,
		entry.Action,
		entry.Module,
		entry.Description,
		entry.ResourceID,
		entry.ResourceType,
		entry.IPAddress,
		entry.UserAgent,
		entry.Changes,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

// lowerBound picks the effective lower time bound for reads: the retention
// horizon, or the caller's start date when it is more recent. A start date
// older than the horizon cannot widen the window.
func (r *ActivityLogRepository) lowerBound(startDate *time.Time) time.Time {
	horizon := r.policy.Horizon(r.now())
	if startDate != nil && startDate.After(horizon) {
		return *startDate
	}
	return horizon
}

// List retrieves a page of activity log entries inside the retention window,
// newest first, joined with the acting admin's name and email.
func (r *ActivityLogRepository) List(ctx context.Context, filters ActivityLogFilters, page, limit int) (*ActivityLogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	countQuery := `SELECT COUNT(*) FROM activity_logs l WHERE l.timestamp >= $1`
	query := `
		SELECT l.id, l.admin_id, l.action, l.module, l.description,
		       l.resource_id, l.resource_type, l.ip_address, l.user_agent,
		       l.changes, l.timestamp,
		       a.name AS admin_name, a.email AS admin_email
		FROM activity_logs l
		JOIN admins a ON a.id = l.admin_id
		WHERE l.timestamp >= $1
	`

	args := []interface{}{r.lowerBound(filters.StartDate)}
	paramIndex := 2

	if filters.AdminID != nil {
		countQuery += fmt.Sprintf(` AND l.admin_id = $%d`, paramIndex)
		query += fmt.Sprintf(` AND l.admin_id = $%d`, paramIndex)
		args = append(args, *filters.AdminID)
		paramIndex++
	}

	if filters.Module != nil {
		countQuery += fmt.Sprintf(` AND l.module = $%d`, paramIndex)
		query += fmt.Sprintf(` AND l.module = $%d`, paramIndex)
		args = append(args, *filters.Module)
		paramIndex++
	}

	if filters.Action != nil {
		countQuery += fmt.Sprintf(` AND l.action = $%d`, paramIndex)
		query += fmt.Sprintf(` AND l.action = $%d`, paramIndex)
		args = append(args, *filters.Action)
		paramIndex++
	}

	if filters.EndDate != nil {
		countQuery += fmt.Sprintf(` AND l.timestamp <= $%d`, paramIndex)
		query += fmt.Sprintf(` AND l.timestamp <= $%d`, paramIndex)
		args = append(args, *filters.EndDate)
		paramIndex++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count activity logs: %w", err)
	}

	query += fmt.Sprintf(` ORDER BY l.timestamp DESC LIMIT $%d OFFSET $%d`, paramIndex, paramIndex+1)
	args = append(args, limit, (page-1)*limit)

	logs := make([]*models.ActivityLogWithAdmin, 0)
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &ActivityLogPage{
		Logs:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID retrieves a single entry by ID, restricted to the retention window.
// An entry older than the horizon is reported as not found even when the row
// still physically exists.
func (r *ActivityLogRepository) GetByID(ctx context.Context, id string) (*models.ActivityLogWithAdmin, error) {
	query := `
		SELECT l.id, l.admin_id, l.action, l.module, l.description,
		       l.resource_id, l.resource_type, l.ip_address, l.user_agent,
		       l.changes, l.timestamp,
		       a.name AS admin_name, a.email AS admin_email
		FROM activity_logs l
		JOIN admins a ON a.id = l.admin_id
		WHERE l.id = $1 AND l.timestamp >= $2
	`

	var entry models.ActivityLogWithAdmin
	err := r.db.GetContext(ctx, &entry, query, id, r.policy.Horizon(r.now()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity log: %w", err)
	}
	return &entry, nil
}

// Stats aggregates the retention window by action, by module, and by admin.
// The per-admin rows include the most recent activity timestamp.
func (r *ActivityLogRepository) Stats(ctx context.Context) (*ActivityStats, error) {
	horizon := r.policy.Horizon(r.now())
	stats := &ActivityStats{
		ByAction: make([]*models.ActionStat, 0),
		ByModule: make([]*models.ModuleStat, 0),
		ByAdmin:  make([]*models.AdminActivityStat, 0),
	}

	actionQuery := `
		SELECT action, COUNT(*) AS count
		FROM activity_logs
		WHERE timestamp >= $1
		GROUP BY action
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &stats.ByAction, actionQuery, horizon); err != nil {
		return nil, fmt.Errorf("failed to aggregate by action: %w", err)
	}

	moduleQuery := `
		SELECT module, COUNT(*) AS count
		FROM activity_logs
		WHERE timestamp >= $1
		GROUP BY module
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &stats.ByModule, moduleQuery, horizon); err != nil {
		return nil, fmt.Errorf("failed to aggregate by module: %w", err)
	}

	adminQuery := `
		SELECT l.admin_id, a.name AS admin_name, a.email AS admin_email, a.role AS admin_role,
		       COUNT(*) AS count, MAX(l.timestamp) AS last_activity
		FROM activity_logs l
		JOIN admins a ON a.id = l.admin_id
		WHERE l.timestamp >= $1
		GROUP BY l.admin_id, a.name, a.email, a.role
		ORDER BY count DESC
	`
	if err := r.db.SelectContext(ctx, &stats.ByAdmin, adminQuery, horizon); err != nil {
		return nil, fmt.Errorf("failed to aggregate by admin: %w", err)
	}

	return stats, nil
}

// DeleteExpired removes all entries older than the retention horizon and
// returns how many rows were deleted. The delete is idempotent: running it
// twice in a row deletes nothing the second time.
func (r *ActivityLogRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_logs WHERE timestamp < $1`,
		r.policy.Horizon(r.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired activity logs: %w", err)
	}
	return res.RowsAffected()
}
