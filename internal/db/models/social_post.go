// Package models - social_post.go defines the SocialPost model for embedded
// social media posts surfaced on the site.
package models

import "time"

// SocialPost represents an embedded social media post
type SocialPost struct {
	ID          string    `db:"id" json:"id"`
	Platform    string    `db:"platform" json:"platform"`
	PostURL     string    `db:"post_url" json:"post_url"`
	Caption     string    `db:"caption" json:"caption"`
	EmbedCode   string    `db:"embed_code" json:"embed_code"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
