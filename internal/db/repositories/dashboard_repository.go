package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
)

// DashboardRepository aggregates entity counts and recent activity for the
// admin dashboard
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// EntityCounts holds per-table row counts shown on the dashboard
type EntityCounts struct {
	Events       int `db:"events" json:"events"`
	Sports       int `db:"sports" json:"sports"`
	SocialWorks  int `db:"social_works" json:"social_works"`
	Galleries    int `db:"galleries" json:"galleries"`
	Members      int `db:"members" json:"members"`
	News         int `db:"news" json:"news"`
	NewContacts  int `db:"new_contacts" json:"new_contacts"`
	Pages        int `db:"pages" json:"pages"`
	Testimonials int `db:"testimonials" json:"testimonials"`
}

// MonthlyEventCount is one month's event total for the dashboard chart
type MonthlyEventCount struct {
	Month string `db:"month" json:"month"` // YYYY-MM
	Count int    `db:"count" json:"count"`
}

// Counts returns row counts for the main content tables in a single query
func (r *DashboardRepository) Counts(ctx context.Context) (*EntityCounts, error) {
	var counts EntityCounts
	err := r.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM events) AS events,
			(SELECT COUNT(*) FROM sports) AS sports,
			(SELECT COUNT(*) FROM social_works) AS social_works,
			(SELECT COUNT(*) FROM galleries) AS galleries,
			(SELECT COUNT(*) FROM members) AS members,
			(SELECT COUNT(*) FROM news) AS news,
			(SELECT COUNT(*) FROM contacts WHERE status = 'new') AS new_contacts,
			(SELECT COUNT(*) FROM pages) AS pages,
			(SELECT COUNT(*) FROM testimonials) AS testimonials`)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard counts: %w", err)
	}
	return &counts, nil
}

// RecentContacts returns the newest contact messages
func (r *DashboardRepository) RecentContacts(ctx context.Context, limit int) ([]*models.Contact, error) {
	if limit < 1 {
		limit = 5
	}
	contacts := make([]*models.Contact, 0)
	err := r.db.SelectContext(ctx, &contacts,
		`SELECT * FROM contacts ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent contacts: %w", err)
	}
	return contacts, nil
}

// UpcomingEvents returns the next published events
func (r *DashboardRepository) UpcomingEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit < 1 {
		limit = 5
	}
	events := make([]*models.Event, 0)
	err := r.db.SelectContext(ctx, &events,
		`SELECT * FROM events
		 WHERE event_date >= NOW() AND status != 'cancelled'
		 ORDER BY event_date ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}
	return events, nil
}

// EventsByMonth returns event counts per calendar month since the given time
func (r *DashboardRepository) EventsByMonth(ctx context.Context, since time.Time) ([]*MonthlyEventCount, error) {
	counts := make([]*MonthlyEventCount, 0)
	err := r.db.SelectContext(ctx, &counts,
		`SELECT TO_CHAR(DATE_TRUNC('month', event_date), 'YYYY-MM') AS month, COUNT(*) AS count
		 FROM events
		 WHERE event_date >= $1
		 GROUP BY DATE_TRUNC('month', event_date)
		 ORDER BY month ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get events by month: %w", err)
	}
	return counts, nil
}
