// Package models - press_mention.go defines the PressMention model for media
// coverage links.
package models

import "time"

// PressMention represents a news outlet article about the organization
type PressMention struct {
	ID          string     `db:"id" json:"id"`
	Outlet      string     `db:"outlet" json:"outlet"`
	Title       string     `db:"title" json:"title"`
	ArticleURL  string     `db:"article_url" json:"article_url"`
	PublishedOn *time.Time `db:"published_on" json:"published_on,omitempty"`
	Thumbnail   string     `db:"thumbnail" json:"thumbnail"`
	IsPublished bool       `db:"is_published" json:"is_published"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
