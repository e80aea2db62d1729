// social_work_repository.go implements SocialWorkRepository for charitable
// initiative records, including the people-helped sum used on the public
// stats endpoint.
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

// SocialWorkRepository handles social work database operations
type SocialWorkRepository struct {
	db *sqlx.DB
}

// NewSocialWorkRepository creates a new SocialWorkRepository
func NewSocialWorkRepository(db *sqlx.DB) *SocialWorkRepository {
	return &SocialWorkRepository{db: db}
}

// SocialWorkFilters contains optional filters for listing initiatives
type SocialWorkFilters struct {
	Category      *string
	Year          *int
	PublishedOnly bool
}

// List retrieves initiatives matching the filters, newest first
func (r *SocialWorkRepository) List(ctx context.Context, filters SocialWorkFilters) ([]*models.SocialWork, error) {
	query := `SELECT * FROM social_works WHERE 1=1`
	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.Category != nil {
		query += fmt.Sprintf(` AND category = $%d`, paramIndex)
		args = append(args, *filters.Category)
		paramIndex++
	}
	if filters.Year != nil {
		query += fmt.Sprintf(` AND year = $%d`, paramIndex)
		args = append(args, *filters.Year)
		paramIndex++
	}
	if filters.PublishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY year DESC, created_at DESC`

	works := make([]*models.SocialWork, 0)
	if err := r.db.SelectContext(ctx, &works, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list social works: %w", err)
	}
	return works, nil
}

// GetByID retrieves an initiative by ID
func (r *SocialWorkRepository) GetByID(ctx context.Context, id string) (*models.SocialWork, error) {
	var work models.SocialWork
	err := r.db.GetContext(ctx, &work, `SELECT * FROM social_works WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get social work: %w", err)
	}
	return &work, nil
}

// Create inserts a new initiative
func (r *SocialWorkRepository) Create(ctx context.Context, work *models.SocialWork) error {
	work.ID = uuid.New().String()
	now := time.Now()
	work.CreatedAt = now
	work.UpdatedAt = now
	if work.Gallery == nil {
		work.Gallery = []byte(`[]`)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO social_works (id, title, description, category, year, people_helped, cover_image, gallery, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		work.ID, work.Title, work.Description, work.Category, work.Year,
		work.PeopleHelped, work.CoverImage, work.Gallery, work.IsPublished,
		work.CreatedAt, work.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert social work: %w", err)
	}
	return nil
}

// Update persists all mutable fields
func (r *SocialWorkRepository) Update(ctx context.Context, work *models.SocialWork) error {
	work.UpdatedAt = time.Now()
	if work.Gallery == nil {
		work.Gallery = []byte(`[]`)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE social_works
		 SET title = $2, description = $3, category = $4, year = $5, people_helped = $6,
		     cover_image = $7, gallery = $8, is_published = $9, updated_at = $10
		 WHERE id = $1`,
		work.ID, work.Title, work.Description, work.Category, work.Year,
		work.PeopleHelped, work.CoverImage, work.Gallery, work.IsPublished, work.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update social work: %w", err)
	}
	return nil
}

// Delete removes an initiative
func (r *SocialWorkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM social_works WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete social work: %w", err)
	}
	return nil
}

// SumPeopleHelped totals people_helped across published initiatives
func (r *SocialWorkRepository) SumPeopleHelped(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(people_helped), 0) FROM social_works WHERE is_published = TRUE`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum people helped: %w", err)
	}
	return total, nil
}
