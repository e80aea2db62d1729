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

// PageRepository handles static page database operations
type PageRepository struct {
	db *sqlx.DB
}

// NewPageRepository creates a new PageRepository
func NewPageRepository(db *sqlx.DB) *PageRepository {
	return &PageRepository{db: db}
}

// List retrieves pages, optionally only published ones
func (r *PageRepository) List(ctx context.Context, publishedOnly bool) ([]*models.Page, error) {
	query := `SELECT * FROM pages`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY title ASC`

	pages := make([]*models.Page, 0)
	if err := r.db.SelectContext(ctx, &pages, query); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// GetByID retrieves a page by ID
func (r *PageRepository) GetByID(ctx context.Context, id string) (*models.Page, error) {
	var page models.Page
	err := r.db.GetContext(ctx, &page, `SELECT * FROM pages WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &page, nil
}

// GetBySlug retrieves a page by its URL slug
func (r *PageRepository) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.GetContext(ctx, &page, `SELECT * FROM pages WHERE slug = $1`, slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page by slug: %w", err)
	}
	return &page, nil
}

// Create inserts a new page. The slug must be unique.
func (r *PageRepository) Create(ctx context.Context, page *models.Page) error {
	page.ID = uuid.New().String()
	now := time.Now()
	page.CreatedAt = now
	page.UpdatedAt = now
	if page.Meta == nil {
		page.Meta = []byte(`{}`)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pages (id, slug, title, content, meta, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		page.ID, page.Slug, page.Title, page.Content, page.Meta,
		page.IsPublished, page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}
	return nil
}

// Update persists all mutable page fields
func (r *PageRepository) Update(ctx context.Context, page *models.Page) error {
	page.UpdatedAt = time.Now()
	if page.Meta == nil {
		page.Meta = []byte(`{}`)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE pages
		 SET slug = $2, title = $3, content = $4, meta = $5,
		     is_published = $6, updated_at = $7
		 WHERE id = $1`,
		page.ID, page.Slug, page.Title, page.Content, page.Meta,
		page.IsPublished, page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	return nil
}

// Delete removes a page
func (r *PageRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	return nil
}
