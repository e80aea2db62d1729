// Package models - admin.go defines the Admin model for CMS back-office accounts
// with email, bcrypt password hash, role, and activation state.
package models

import "time"

// Admin roles. super_admin can manage other admins and read the audit trail;
// editor is limited to content operations and the dashboard.
const (
	RoleSuperAdmin = "super_admin"
	RoleEditor     = "editor"
)

// ValidRole reports whether s is a known admin role.
func ValidRole(s string) bool {
	return s == RoleSuperAdmin || s == RoleEditor
}

// Admin represents a back-office account
type Admin struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsSuperAdmin returns true when the account holds the super_admin role.
func (a *Admin) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
