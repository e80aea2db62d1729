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

// MemberRepository handles member profile database operations
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// MemberFilters narrows member listings
type MemberFilters struct {
	Role       *string
	ActiveOnly bool
	Spotlight  *bool
}

// List retrieves members ordered by priority then join date
func (r *MemberRepository) List(ctx context.Context, filters MemberFilters) ([]*models.Member, error) {
	query := `SELECT * FROM members WHERE 1=1`
	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.Role != nil {
		query += fmt.Sprintf(` AND role = $%d`, paramIndex)
		args = append(args, *filters.Role)
		paramIndex++
	}
	if filters.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	if filters.Spotlight != nil {
		query += fmt.Sprintf(` AND is_spotlight = $%d`, paramIndex)
		args = append(args, *filters.Spotlight)
		paramIndex++
	}
	query += ` ORDER BY priority ASC, joined_at ASC`

	members := make([]*models.Member, 0)
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetByID retrieves a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.GetContext(ctx, &member, `SELECT * FROM members WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	member.ID = uuid.New().String()
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.Socials == nil {
		member.Socials = []byte(`{}`)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, name, role, designation, bio, photo, email, phone, socials, priority, is_spotlight, is_active, joined_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		member.ID, member.Name, member.Role, member.Designation, member.Bio,
		member.Photo, member.Email, member.Phone, member.Socials, member.Priority,
		member.IsSpotlight, member.IsActive, member.JoinedAt,
		member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// Update persists all mutable member fields
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()
	if member.Socials == nil {
		member.Socials = []byte(`{}`)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE members
		 SET name = $2, role = $3, designation = $4, bio = $5, photo = $6,
		     email = $7, phone = $8, socials = $9, priority = $10,
		     is_spotlight = $11, is_active = $12, joined_at = $13, updated_at = $14
		 WHERE id = $1`,
		member.ID, member.Name, member.Role, member.Designation, member.Bio,
		member.Photo, member.Email, member.Phone, member.Socials, member.Priority,
		member.IsSpotlight, member.IsActive, member.JoinedAt, member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// Delete removes a member
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
