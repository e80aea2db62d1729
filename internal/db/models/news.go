// Package models - news.go defines the News model for announcements and notices.
// Items with a past expires_at are hidden from public listings automatically.
package models

import "time"

// News represents an announcement, notice, or achievement post
type News struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	NewsType    string     `db:"news_type" json:"news_type"`
	CoverImage  string     `db:"cover_image" json:"cover_image"`
	Views       int64      `db:"views" json:"views"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	IsPublished bool       `db:"is_published" json:"is_published"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
