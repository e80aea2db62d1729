// admin_repository.go implements AdminRepository, providing database queries for
// back-office accounts, including the guard count used to protect the last
// active super admin.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
)

// AdminRepository handles admin account database operations
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin account. Email is stored lowercased so lookups
// are case-insensitive.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = uuid.New().String()
	admin.Email = strings.ToLower(admin.Email)
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query := `
		INSERT INTO admins (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Name, admin.Email, admin.PasswordHash,
		admin.Role, admin.IsActive, admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.GetContext(ctx, &admin, `SELECT * FROM admins WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// GetByEmail retrieves an admin by email (case-insensitive)
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.GetContext(ctx, &admin, `SELECT * FROM admins WHERE email = $1`, strings.ToLower(email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return &admin, nil
}

// List retrieves all admin accounts, newest first
func (r *AdminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	admins := make([]*models.Admin, 0)
	err := r.db.SelectContext(ctx, &admins, `SELECT * FROM admins ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// Update persists name, email, role, and activation state. Callers are
// responsible for enforcing the super admin cardinality invariant before
// calling this.
func (r *AdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	admin.Email = strings.ToLower(admin.Email)
	admin.UpdatedAt = time.Now()

	query := `
		UPDATE admins
		SET name = $2, email = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Name, admin.Email, admin.Role, admin.IsActive, admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored bcrypt hash
func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps a successful login
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admins SET last_login = $2 WHERE id = $1`,
		id, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// Delete removes an admin account. The activity trail rows cascade with it.
// Callers are responsible for enforcing the super admin cardinality invariant
// before calling this.
func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	return nil
}

// CountOtherActiveSuperAdmins counts active super admins excluding the given
// account. A zero result means the excluded account is the last line of
// defense and must not be demoted or deactivated.
func (r *AdminRepository) CountOtherActiveSuperAdmins(ctx context.Context, excludeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admins WHERE role = $1 AND is_active = TRUE AND id != $2`,
		models.RoleSuperAdmin, excludeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count super admins: %w", err)
	}
	return count, nil
}
