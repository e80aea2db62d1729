// Package models - testimonial.go defines the Testimonial model for quotes from
// community members shown on the site.
package models

import "time"

// Testimonial represents a published quote with attribution
type Testimonial struct {
	ID          string    `db:"id" json:"id"`
	Author      string    `db:"author" json:"author"`
	AuthorTitle string    `db:"author_title" json:"author_title"`
	Quote       string    `db:"quote" json:"quote"`
	Photo       string    `db:"photo" json:"photo"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
