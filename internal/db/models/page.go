// Package models - page.go defines the Page model for slug-addressed static pages.
package models

import (
	"encoding/json"
	"time"
)

// Page represents a static content page addressed by slug
type Page struct {
	ID          string          `db:"id" json:"id"`
	Slug        string          `db:"slug" json:"slug"`
	Title       string          `db:"title" json:"title"`
	Content     string          `db:"content" json:"content"`
	Meta        json.RawMessage `db:"meta" json:"meta"` // JSONB: SEO title/description/keywords
	IsPublished bool            `db:"is_published" json:"is_published"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
