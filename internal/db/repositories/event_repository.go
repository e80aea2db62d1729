// event_repository.go implements EventRepository, providing database queries for
// community events with status/type/year filtering and an upcoming shortlist.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
)

// EventRepository handles event database operations
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventFilters contains optional filters for listing events
type EventFilters struct {
	Status        *string
	EventType     *string
	Year          *int
	PublishedOnly bool
}

// List retrieves events matching the filters, newest event date first
func (r *EventRepository) List(ctx context.Context, filters EventFilters) ([]*models.Event, error) {
	query := `SELECT * FROM events WHERE 1=1`
	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.Status != nil {
		query += fmt.Sprintf(` AND status = $%d`, paramIndex)
		args = append(args, *filters.Status)
		paramIndex++
	}
	if filters.EventType != nil {
		query += fmt.Sprintf(` AND event_type = $%d`, paramIndex)
		args = append(args, *filters.EventType)
		paramIndex++
	}
	if filters.Year != nil {
		query += fmt.Sprintf(` AND EXTRACT(YEAR FROM event_date) = $%d`, paramIndex)
		args = append(args, *filters.Year)
		paramIndex++
	}
	if filters.PublishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY event_date DESC`

	events := make([]*models.Event, 0)
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Upcoming retrieves published events with a future event date, soonest first
func (r *EventRepository) Upcoming(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit < 1 {
		limit = 5
	}
	events := make([]*models.Event, 0)
	query := `
		SELECT * FROM events
		WHERE is_published = TRUE AND event_date >= $1 AND status != 'cancelled'
		ORDER BY event_date ASC
		LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &events, query, time.Now(), limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New().String()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Gallery == nil {
		event.Gallery = []byte(`[]`)
	}

	query := `
		INSERT INTO events (id, title, description, event_type, status, event_date, end_date, location, cover_image, gallery, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventType, event.Status,
		event.EventDate, event.EndDate, event.Location, event.CoverImage,
		event.Gallery, event.IsPublished, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Update persists all mutable event fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	if event.Gallery == nil {
		event.Gallery = []byte(`[]`)
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, event_type = $4, status = $5, event_date = $6,
		    end_date = $7, location = $8, cover_image = $9, gallery = $10,
		    is_published = $11, updated_at = $12
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventType, event.Status,
		event.EventDate, event.EndDate, event.Location, event.CoverImage,
		event.Gallery, event.IsPublished, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
