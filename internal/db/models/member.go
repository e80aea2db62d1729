// Package models - member.go defines the Member model for the organization's
// people directory, ordered by priority with optional spotlight placement.
package models

import (
	"encoding/json"
	"time"
)

// Member represents a member of the organization
type Member struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Role        string          `db:"role" json:"role"`
	Designation string          `db:"designation" json:"designation"`
	Bio         string          `db:"bio" json:"bio"`
	Photo       string          `db:"photo" json:"photo"`
	Email       string          `db:"email" json:"email"`
	Phone       string          `db:"phone" json:"phone"`
	Socials     json.RawMessage `db:"socials" json:"socials"` // JSONB map of platform → URL
	Priority    int             `db:"priority" json:"priority"`
	IsSpotlight bool            `db:"is_spotlight" json:"is_spotlight"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	JoinedAt    *time.Time      `db:"joined_at" json:"joined_at,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
