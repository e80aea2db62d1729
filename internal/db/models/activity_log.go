// Package models - activity_log.go defines the ActivityLog model recording admin actions
// against CMS content, capturing actor, action, module, affected resource, and client info.
package models

import (
	"encoding/json"
	"time"
)

// Activity log actions. The set is closed: the database enforces it with a
// CHECK constraint and ValidAction mirrors it for request validation.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionLogin   = "login"
	ActionLogout  = "logout"
	ActionBackup  = "backup"
	ActionRestore = "restore"
)

// Activity log modules. One per content area plus "auth" for session events.
const (
	ModuleEvents        = "events"
	ModuleSports        = "sports"
	ModuleSocialWork    = "social_work"
	ModuleGallery       = "gallery"
	ModuleSliderImages  = "slider_images"
	ModuleMembers       = "members"
	ModuleNews          = "news"
	ModuleContact       = "contact"
	ModulePages         = "pages"
	ModuleSettings      = "settings"
	ModuleAuth          = "auth"
	ModuleTestimonials  = "testimonials"
	ModuleSocialPosts   = "social_posts"
	ModulePressMentions = "press_mentions"
)

var validActions = map[string]bool{
	ActionCreate: true, ActionUpdate: true, ActionDelete: true,
	ActionLogin: true, ActionLogout: true, ActionBackup: true, ActionRestore: true,
}

var validModules = map[string]bool{
	ModuleEvents: true, ModuleSports: true, ModuleSocialWork: true,
	ModuleGallery: true, ModuleSliderImages: true, ModuleMembers: true,
	ModuleNews: true, ModuleContact: true, ModulePages: true,
	ModuleSettings: true, ModuleAuth: true, ModuleTestimonials: true,
	ModuleSocialPosts: true, ModulePressMentions: true,
}

// ValidAction reports whether s is a known activity log action.
func ValidAction(s string) bool { return validActions[s] }

// ValidModule reports whether s is a known activity log module.
func ValidModule(s string) bool { return validModules[s] }

// ActivityLog represents one append-only audit trail entry. Entries are
// immutable once written and are removed only by retention sweeps.
type ActivityLog struct {
	ID           string          `db:"id" json:"id"`
	AdminID      string          `db:"admin_id" json:"admin_id"`
	Action       string          `db:"action" json:"action"`
	Module       string          `db:"module" json:"module"`
	Description  string          `db:"description" json:"description"`
	ResourceID   *string         `db:"resource_id" json:"resource_id,omitempty"`
	ResourceType *string         `db:"resource_type" json:"resource_type,omitempty"`
	IPAddress    *string         `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `db:"user_agent" json:"user_agent,omitempty"`
	Changes      json.RawMessage `db:"changes" json:"changes,omitempty"` // optional field-level diff
	Timestamp    time.Time       `db:"timestamp" json:"timestamp"`
}

// ActivityLogWithAdmin pairs a log entry with the acting admin's display fields
// for list responses.
type ActivityLogWithAdmin struct {
	ActivityLog
	AdminName  string `db:"admin_name" json:"admin_name"`
	AdminEmail string `db:"admin_email" json:"admin_email"`
}

// ActionStat is one row of the group-by-action aggregate.
type ActionStat struct {
	Action string `db:"action" json:"action"`
	Count  int64  `db:"count" json:"count"`
}

// ModuleStat is one row of the group-by-module aggregate.
type ModuleStat struct {
	Module string `db:"module" json:"module"`
	Count  int64  `db:"count" json:"count"`
}

// AdminActivityStat is one row of the per-admin aggregate: how many entries
// the admin produced inside the retention window and when the latest one was.
type AdminActivityStat struct {
	AdminID      string    `db:"admin_id" json:"admin_id"`
	AdminName    string    `db:"admin_name" json:"admin_name"`
	AdminEmail   string    `db:"admin_email" json:"admin_email"`
	AdminRole    string    `db:"admin_role" json:"admin_role"`
	Count        int64     `db:"count" json:"count"`
	LastActivity time.Time `db:"last_activity" json:"last_activity"`
}
