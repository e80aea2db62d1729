// Package models - sport.go defines the Sport and Tournament models. Tournaments
// embed their teams and match fixtures as JSONB documents.
package models

import (
	"encoding/json"
	"time"
)

// Sport represents a sport discipline the organization runs programs for
type Sport struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon" json:"icon"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Tournament represents a tournament within a sport
type Tournament struct {
	ID          string          `db:"id" json:"id"`
	SportID     string          `db:"sport_id" json:"sport_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Season      string          `db:"season" json:"season"`
	Status      string          `db:"status" json:"status"`
	StartDate   *time.Time      `db:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time      `db:"end_date" json:"end_date,omitempty"`
	Teams       json.RawMessage `db:"teams" json:"teams"`     // JSONB array
	Matches     json.RawMessage `db:"matches" json:"matches"` // JSONB array
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
