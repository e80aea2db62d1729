// Package models - gallery.go defines the Gallery (photo/video album) and
// SliderImage (homepage carousel) models.
package models

import (
	"encoding/json"
	"time"
)

// Gallery represents a media album. Media items live in a JSONB array so an
// album's photos and videos travel with the row.
type Gallery struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Category    string          `db:"category" json:"category"`
	CoverImage  string          `db:"cover_image" json:"cover_image"`
	Media       json.RawMessage `db:"media" json:"media"`
	Views       int64           `db:"views" json:"views"`
	IsPublished bool            `db:"is_published" json:"is_published"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// SliderImage represents one slide of the homepage carousel, ordered by
// DisplayOrder ascending.
type SliderImage struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Subtitle     string    `db:"subtitle" json:"subtitle"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	LinkURL      string    `db:"link_url" json:"link_url"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
