// Package models - social_work.go defines the SocialWork model for charitable
// initiatives, tracked per category and year with a people-helped tally.
package models

import (
	"encoding/json"
	"time"
)

// SocialWork represents a charitable initiative or campaign
type SocialWork struct {
	ID           string          `db:"id" json:"id"`
	Title        string          `db:"title" json:"title"`
	Description  string          `db:"description" json:"description"`
	Category     string          `db:"category" json:"category"`
	Year         int             `db:"year" json:"year"`
	PeopleHelped int             `db:"people_helped" json:"people_helped"`
	CoverImage   string          `db:"cover_image" json:"cover_image"`
	Gallery      json.RawMessage `db:"gallery" json:"gallery"`
	IsPublished  bool            `db:"is_published" json:"is_published"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
