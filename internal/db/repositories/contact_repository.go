package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
)

// ContactRepository handles contact form message database operations
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a message from the public contact form. New messages always
// start in the 'new' status.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	contact.ID = uuid.New().String()
	contact.Status = models.ContactNew
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, email, phone, subject, message, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		contact.ID, contact.Name, contact.Email, contact.Phone,
		contact.Subject, contact.Message, contact.Status,
		contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// List retrieves messages, optionally filtered by status, newest first
func (r *ContactRepository) List(ctx context.Context, status *string) ([]*models.Contact, error) {
	query := `SELECT * FROM contacts`
	args := make([]interface{}, 0)
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	contacts := make([]*models.Contact, 0)
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// GetByID retrieves a message by ID
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.GetContext(ctx, &contact, `SELECT * FROM contacts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

// UpdateStatus moves a message through the new/read/replied workflow
func (r *ContactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidContactStatus(status) {
		return fmt.Errorf("invalid contact status: %s", status)
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	return nil
}

// Delete removes a message
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// CountNew returns how many messages are still unread
func (r *ContactRepository) CountNew(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM contacts WHERE status = $1`, models.ContactNew)
	if err != nil {
		return 0, fmt.Errorf("failed to count new contacts: %w", err)
	}
	return count, nil
}
