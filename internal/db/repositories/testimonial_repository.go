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

// TestimonialRepository handles testimonial database operations
type TestimonialRepository struct {
	db *sqlx.DB
}

// NewTestimonialRepository creates a new TestimonialRepository
func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// List retrieves testimonials, optionally only published ones, newest first
func (r *TestimonialRepository) List(ctx context.Context, publishedOnly bool) ([]*models.Testimonial, error) {
	query := `SELECT * FROM testimonials`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	testimonials := make([]*models.Testimonial, 0)
	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

// GetByID retrieves a testimonial by ID
func (r *TestimonialRepository) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.db.GetContext(ctx, &testimonial, `SELECT * FROM testimonials WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}
	return &testimonial, nil
}

// Create inserts a new testimonial
func (r *TestimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	testimonial.ID = uuid.New().String()
	now := time.Now()
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO testimonials (id, author, author_title, quote, photo, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		testimonial.ID, testimonial.Author, testimonial.AuthorTitle,
		testimonial.Quote, testimonial.Photo, testimonial.IsPublished,
		testimonial.CreatedAt, testimonial.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert testimonial: %w", err)
	}
	return nil
}

// Update persists all mutable testimonial fields
func (r *TestimonialRepository) Update(ctx context.Context, testimonial *models.Testimonial) error {
	testimonial.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE testimonials
		 SET author = $2, author_title = $3, quote = $4, photo = $5,
		     is_published = $6, updated_at = $7
		 WHERE id = $1`,
		testimonial.ID, testimonial.Author, testimonial.AuthorTitle,
		testimonial.Quote, testimonial.Photo, testimonial.IsPublished,
		testimonial.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}
	return nil
}

// Delete removes a testimonial
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return nil
}
