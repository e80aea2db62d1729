// Package models - contact.go defines the Contact model for messages submitted
// through the public contact form, with a new → read → replied workflow.
package models

import "time"

// Contact message statuses enforced by a database CHECK constraint.
const (
	ContactNew     = "new"
	ContactRead    = "read"
	ContactReplied = "replied"
)

// ValidContactStatus reports whether s is a known contact message status.
func ValidContactStatus(s string) bool {
	return s == ContactNew || s == ContactRead || s == ContactReplied
}

// Contact represents a message from the public contact form
type Contact struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
