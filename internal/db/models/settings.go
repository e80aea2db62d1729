// Package models - settings.go defines the singleton Settings model holding
// site-wide configuration: identity, contact details, social links, and SEO.
package models

import (
	"encoding/json"
	"time"
)

// Settings is the single-row site settings record. The repository creates it
// with defaults on first read (get-or-create).
type Settings struct {
	ID              string          `db:"id" json:"id"`
	SiteName        string          `db:"site_name" json:"site_name"`
	Tagline         string          `db:"tagline" json:"tagline"`
	Logo            string          `db:"logo" json:"logo"`
	Contact         json.RawMessage `db:"contact" json:"contact"`
	SocialMedia     json.RawMessage `db:"social_media" json:"social_media"`
	SEO             json.RawMessage `db:"seo" json:"seo"`
	MaintenanceMode bool            `db:"maintenance_mode" json:"maintenance_mode"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
