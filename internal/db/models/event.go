// Package models - event.go defines the Event model for community events with
// schedule, status, and an embedded gallery of media items.
package models

import (
	"encoding/json"
	"time"
)

// Event statuses enforced by a database CHECK constraint.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// Event represents a community event
type Event struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	EventType   string          `db:"event_type" json:"event_type"`
	Status      string          `db:"status" json:"status"`
	EventDate   time.Time       `db:"event_date" json:"event_date"`
	EndDate     *time.Time      `db:"end_date" json:"end_date,omitempty"`
	Location    string          `db:"location" json:"location"`
	CoverImage  string          `db:"cover_image" json:"cover_image"`
	Gallery     json.RawMessage `db:"gallery" json:"gallery"` // JSONB array of media items
	IsPublished bool            `db:"is_published" json:"is_published"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
